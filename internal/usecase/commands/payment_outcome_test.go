//go:build unit

package commands_test

import (
	"context"
	"testing"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/domain/payment"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/metrics"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/shared"
	commandsmock "learnhub-checkout/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentOutcomeAdapterTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	verifier *commandsmock.MockVerificationCommands
	reg      *prometheus.Registry
	adapter  commands.PaymentOutcomeAdapter
	session  shared.Session
	orderID  uuid.UUID
	expected []order.ExpectedItem
}

func (s *PaymentOutcomeAdapterTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.verifier = commandsmock.NewMockVerificationCommands(s.ctrl)
	s.reg = prometheus.NewRegistry()
	s.adapter = commands.NewPaymentOutcomeAdapter(s.verifier, metrics.NewPipeline(s.reg))
	s.session = shared.NewSession(uuid.New())
	s.orderID = uuid.New()
	s.expected = []order.ExpectedItem{{CourseID: uuid.New(), Price: 2000}}
}

func (s *PaymentOutcomeAdapterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestPaymentOutcomeAdapterSuite(t *testing.T) {
	suite.Run(t, new(PaymentOutcomeAdapterTestSuite))
}

func (s *PaymentOutcomeAdapterTestSuite) outcomeCount(outcome string) float64 {
	families, err := s.reg.Gather()
	s.Require().NoError(err)
	for _, mf := range families {
		if mf.GetName() != "checkout_payment_outcomes_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" && l.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func (s *PaymentOutcomeAdapterTestSuite) TestDeliver_Success() {
	want := &commands.VerifyResult{OrderID: s.orderID, Verified: true, Status: order.StatusProvisioned}
	s.verifier.EXPECT().Verify(gomock.Any(), s.session, commands.VerifyRequest{
		OrderID:        s.orderID,
		GatewayOrderID: "order_gw_1",
		PaymentID:      "pay_1",
		Signature:      "sig",
		Courses:        s.expected,
	}).Return(want, nil).Times(1)

	got, err := s.adapter.Deliver(s.ctx, s.session, s.orderID, payment.Success{
		GatewayOrderID: "order_gw_1",
		PaymentID:      "pay_1",
		Signature:      "sig",
	}, s.expected)

	s.Require().NoError(err)
	s.Same(want, got)
	s.Equal(float64(1), s.outcomeCount("success"))
}

func (s *PaymentOutcomeAdapterTestSuite) TestDeliver_Rejection() {
	rejected := &commands.VerifyResult{OrderID: s.orderID, Status: order.StatusFailed}
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(rejected, errs.ErrSignatureMismatch).Times(1)

	got, err := s.adapter.Deliver(s.ctx, s.session, s.orderID, payment.Success{
		GatewayOrderID: "order_gw_1",
		PaymentID:      "pay_1",
		Signature:      "forged",
	}, s.expected)

	s.True(errs.Is(err, errs.ErrSignatureMismatch))
	s.Same(rejected, got)
}

func (s *PaymentOutcomeAdapterTestSuite) TestDeliver_NoVerification() {
	tests := []struct {
		name    string
		session shared.Session
		outcome payment.Outcome
		target  error
		detail  string
	}{
		{name: "failure carries the processor reason", session: s.session, outcome: payment.Failure{Reason: "card declined", Code: "BAD_REQUEST_ERROR"}, target: errs.ErrPaymentFailedAtGateway, detail: "card declined"},
		{name: "cancelled", session: s.session, outcome: payment.Cancelled{}, target: errs.ErrPaymentCancelledByUser},
		{name: "missing outcome", session: s.session, outcome: nil, target: errs.ErrDomainValidation},
		{name: "no session", session: shared.Session{}, outcome: payment.Cancelled{}, target: errs.ErrUnauthenticated},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			got, err := s.adapter.Deliver(s.ctx, tc.session, s.orderID, tc.outcome, s.expected)

			s.Nil(got)
			s.True(errs.Is(err, tc.target), "got %v", err)
			if tc.detail != "" {
				s.Contains(errs.Details(err), tc.detail)
			}
		})
	}
	s.Equal(float64(1), s.outcomeCount("failure"))
	s.Equal(float64(1), s.outcomeCount("cancelled"))
}
