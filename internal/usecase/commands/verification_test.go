//go:build unit

package commands_test

import (
	"context"
	"testing"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/shared"
	"learnhub-checkout/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const gatewayOrderID = "order_gw_1"

type VerificationUseCaseTestSuite struct {
	suite.Suite
	ctx     context.Context
	p       *pipeline
	b       *builder.OrderBuilder
	pending *order.Order
	session shared.Session
}

func (s *VerificationUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.p = newPipeline(gatewaySettings(), nil)
	s.b = builder.NewOrderBuilder()
	s.b.Now = s.p.clock.Now()
	s.p.seedCart(s.b)

	o, err := s.b.BuildPending(gatewayOrderID)
	s.Require().NoError(err)
	s.p.store.PutOrder(o)
	s.pending = o
	s.session = shared.NewSession(s.b.UserID)
}

func TestVerificationUseCaseSuite(t *testing.T) {
	suite.Run(t, new(VerificationUseCaseTestSuite))
}

func (s *VerificationUseCaseTestSuite) request(paymentID string) commands.VerifyRequest {
	return commands.VerifyRequest{
		OrderID:        s.pending.ID(),
		GatewayOrderID: gatewayOrderID,
		PaymentID:      paymentID,
		Signature:      sign(gatewayOrderID, paymentID),
		Courses:        s.b.ExpectedItems(),
	}
}

func (s *VerificationUseCaseTestSuite) TestVerify_Success() {
	res, err := s.p.verifier.Verify(s.ctx, s.session, s.request("pay_1"))

	s.Require().NoError(err)
	s.True(res.Verified)
	s.False(res.Replayed)
	s.False(res.ProvisionPending())
	s.Equal(order.StatusProvisioned, res.Status)
	s.Require().NotNil(res.Provision)
	s.True(res.Provision.Complete())

	stored := s.p.store.Order(s.pending.ID())
	s.Equal(order.StatusProvisioned, stored.Status())
	s.Equal("pay_1", stored.PaymentID())
	s.NotNil(stored.VerifiedAt())
	s.NotNil(stored.CompletedAt())
	for _, courseID := range s.b.CourseIDs() {
		s.NotNil(s.p.store.Enrollment(s.b.UserID, courseID))
	}
	s.Empty(s.p.store.CartItems(s.b.UserID))
	s.Equal([]string{shared.EventOrderVerified, shared.EventOrderProvisioned}, s.p.store.Events())
}

func (s *VerificationUseCaseTestSuite) TestVerify_Replay() {
	s.Run("same payment id is acknowledged without new effects", func() {
		_, err := s.p.verifier.Verify(s.ctx, s.session, s.request("pay_1"))
		s.Require().NoError(err)
		events := len(s.p.store.Events())

		res, err := s.p.verifier.Verify(s.ctx, s.session, s.request("pay_1"))

		s.Require().NoError(err)
		s.True(res.Verified)
		s.True(res.Replayed)
		s.Equal(order.StatusProvisioned, res.Status)
		s.Len(s.p.store.Events(), events)
	})

	s.Run("another payment id on a paid order is refused", func() {
		res, err := s.p.verifier.Verify(s.ctx, s.session, s.request("pay_2"))

		s.Nil(res)
		s.True(errs.Is(err, errs.ErrOrderNotVerifiable))
		s.Equal("pay_1", s.p.store.Order(s.pending.ID()).PaymentID())
	})
}

func (s *VerificationUseCaseTestSuite) TestVerify_Rejected() {
	tests := []struct {
		name   string
		mutate func(req *commands.VerifyRequest)
		target error
		reason order.FailureReason
	}{
		{
			name:   "forged signature",
			mutate: func(req *commands.VerifyRequest) { req.Signature = sign(gatewayOrderID, "pay_other") },
			target: errs.ErrSignatureMismatch,
			reason: order.ReasonSignatureMismatch,
		},
		{
			name: "signature for another processor order",
			mutate: func(req *commands.VerifyRequest) {
				req.GatewayOrderID = "order_gw_other"
				req.Signature = sign("order_gw_other", req.PaymentID)
			},
			target: errs.ErrSignatureMismatch,
			reason: order.ReasonSignatureMismatch,
		},
		{
			name:   "claimed price differs from the snapshot",
			mutate: func(req *commands.VerifyRequest) { req.Courses[0].Price++ },
			target: errs.ErrAmountMismatch,
			reason: order.ReasonAmountMismatch,
		},
		{
			name:   "claimed course list is short",
			mutate: func(req *commands.VerifyRequest) { req.Courses = req.Courses[:1] },
			target: errs.ErrAmountMismatch,
			reason: order.ReasonAmountMismatch,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			req := s.request("pay_1")
			tc.mutate(&req)

			res, err := s.p.verifier.Verify(s.ctx, s.session, req)

			s.True(errs.Is(err, tc.target), "got %v", err)
			s.Require().NotNil(res)
			s.False(res.Verified)
			s.Equal(order.StatusFailed, res.Status)

			stored := s.p.store.Order(s.pending.ID())
			s.Equal(order.StatusFailed, stored.Status())
			s.Equal(tc.reason, stored.FailureReason())
			s.Empty(stored.PaymentID())
			for _, courseID := range s.b.CourseIDs() {
				s.Nil(s.p.store.Enrollment(s.b.UserID, courseID))
			}
			s.Equal([]string{shared.EventOrderFailed}, s.p.store.Events())
		})
	}
}

func (s *VerificationUseCaseTestSuite) TestVerify_Refused() {
	outsider := uuid.New()
	tests := []struct {
		name    string
		session func() shared.Session
		setup   func()
		mutate  func(req *commands.VerifyRequest)
		target  error
	}{
		{name: "no session", session: func() shared.Session { return shared.Session{} }, target: errs.ErrUnauthenticated},
		{name: "body user differs", mutate: func(req *commands.VerifyRequest) { req.UserID = &outsider }, target: errs.ErrForbidden},
		{name: "missing payment id", mutate: func(req *commands.VerifyRequest) { req.PaymentID = "" }, target: errs.ErrDomainValidation},
		{name: "missing signature", mutate: func(req *commands.VerifyRequest) { req.Signature = "" }, target: errs.ErrDomainValidation},
		{name: "unknown order", mutate: func(req *commands.VerifyRequest) { req.OrderID = uuid.New() }, target: errs.ErrOrderNotFound},
		{name: "order of another learner", session: func() shared.Session { return shared.NewSession(outsider) }, target: errs.ErrOrderNotFound},
		{
			name: "expired order",
			setup: func() {
				s.Require().NoError(s.pending.Expire(s.p.clock.Now()))
				s.p.store.PutOrder(s.pending)
			},
			target: errs.ErrOrderNotVerifiable,
		},
		{
			name: "payment id already spent on another order",
			setup: func() {
				ob := builder.NewOrderBuilder().WithUser(s.b.UserID)
				other, err := ob.BuildPending("order_gw_9")
				s.Require().NoError(err)
				s.p.store.PutOrder(other)
				_, err = s.p.verifier.Verify(s.ctx, s.session, commands.VerifyRequest{
					OrderID:        other.ID(),
					GatewayOrderID: "order_gw_9",
					PaymentID:      "pay_1",
					Signature:      sign("order_gw_9", "pay_1"),
					Courses:        ob.ExpectedItems(),
				})
				s.Require().NoError(err)
			},
			target: errs.ErrOrderNotVerifiable,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			if tc.setup != nil {
				tc.setup()
			}
			session := s.session
			if tc.session != nil {
				session = tc.session()
			}
			req := s.request("pay_1")
			if tc.mutate != nil {
				tc.mutate(&req)
			}
			before := s.p.store.Order(s.pending.ID()).Status()

			res, err := s.p.verifier.Verify(s.ctx, session, req)

			s.Nil(res)
			s.True(errs.Is(err, tc.target), "got %v", err)
			s.Equal(before, s.p.store.Order(s.pending.ID()).Status())
		})
	}
}

func (s *VerificationUseCaseTestSuite) TestVerify_ProvisioningFailsAfterCommit() {
	failing := s.b.Items[0].CourseID
	s.p.store.FailUpserts(failing, 1)

	res, err := s.p.verifier.Verify(s.ctx, s.session, s.request("pay_1"))

	s.Require().NoError(err)
	s.True(res.Verified)
	s.True(res.ProvisionPending())
	s.Equal(order.StatusVerified, res.Status)
	s.Equal([]uuid.UUID{failing}, res.Provision.Pending())
	s.Equal(order.StatusVerified, s.p.store.Order(s.pending.ID()).Status())

	again, err := s.p.verifier.Verify(s.ctx, s.session, s.request("pay_1"))
	s.Require().NoError(err)
	s.True(again.Replayed)
	s.Equal(order.StatusProvisioned, again.Status)
}

func (s *VerificationUseCaseTestSuite) TestVerify_DuplicatePurchase() {
	earlier, err := builder.NewOrderBuilder().
		WithUser(s.b.UserID).
		WithPaymentMode(order.PaymentModeDemo).
		With(func(b *builder.OrderBuilder) { b.Items = s.b.Items[:1] }).
		BuildDomain()
	s.Require().NoError(err)
	s.Require().NoError(earlier.MarkVerified("demo_earlier", s.p.clock.Now()))
	s.p.store.PutOrder(earlier)

	_, err = s.p.verifier.Verify(s.ctx, s.session, s.request("pay_1"))

	s.Require().NoError(err)
	s.Contains(s.p.store.Events(), shared.EventOrderDuplicatePurchase)
	s.Equal(order.StatusProvisioned, s.p.store.Order(s.pending.ID()).Status())
}

func (s *VerificationUseCaseTestSuite) TestVerifyDemo_DisabledWithProcessor() {
	res, err := s.p.verifier.VerifyDemo(s.ctx, s.session, s.pending.ID())

	s.Nil(res)
	s.True(errs.Is(err, errs.ErrOrderNotVerifiable))
}
