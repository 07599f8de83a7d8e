//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/shared"
	"learnhub-checkout/tests/common/builder"
	commandsmock "learnhub-checkout/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ProvisioningUseCaseTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	cache    *commandsmock.MockCartCacheInvalidator
	p        *pipeline
	b        *builder.OrderBuilder
	verified *order.Order
	session  shared.Session
}

func (s *ProvisioningUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.cache = commandsmock.NewMockCartCacheInvalidator(s.ctrl)
	s.p = newPipeline(gatewaySettings(), s.cache)
	s.b = builder.NewOrderBuilder()
	s.b.Now = s.p.clock.Now()
	s.p.seedCart(s.b)

	o, err := s.b.BuildPending("order_gw_1")
	s.Require().NoError(err)
	s.Require().NoError(o.MarkVerified("pay_1", s.b.Now))
	s.p.store.PutOrder(o)
	s.verified = o
	s.session = shared.NewSession(s.b.UserID)
}

func (s *ProvisioningUseCaseTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestProvisioningUseCaseSuite(t *testing.T) {
	suite.Run(t, new(ProvisioningUseCaseTestSuite))
}

func (s *ProvisioningUseCaseTestSuite) TestProvisionOrder_Complete() {
	s.cache.EXPECT().Invalidate(gomock.Any(), s.b.UserID).Return(nil).Times(1)

	res, err := s.p.provisioner.ProvisionOrder(s.ctx, s.verified.ID())

	s.Require().NoError(err)
	s.True(res.Complete())
	s.Require().Len(res.Courses, 2)
	for i, c := range res.Courses {
		s.Equal(s.b.Items[i].CourseID, c.CourseID)
		s.Equal(enrollment.OutcomeGranted, c.Outcome)
		s.Require().NotNil(c.ExpiresAt)
		s.Equal(s.p.clock.Now().Add(testTerm), *c.ExpiresAt)
	}
	s.Equal(order.StatusProvisioned, s.p.store.Order(s.verified.ID()).Status())
	s.Empty(s.p.store.CartItems(s.b.UserID))
	for _, step := range s.p.store.Steps(s.verified.ID()) {
		s.Equal(enrollment.OutcomeGranted, step.Outcome)
		s.Equal(1, step.Attempts)
	}
	s.Equal([]string{shared.EventOrderProvisioned}, s.p.store.Events())
}

func (s *ProvisioningUseCaseTestSuite) TestProvisionOrder_Idempotent() {
	s.cache.EXPECT().Invalidate(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	first, err := s.p.provisioner.ProvisionOrder(s.ctx, s.verified.ID())
	s.Require().NoError(err)
	s.p.clock.Add(time.Hour)

	second, err := s.p.provisioner.ProvisionOrder(s.ctx, s.verified.ID())

	s.Require().NoError(err)
	s.True(second.Complete())
	s.Equal(first.Courses, second.Courses)
	s.Len(s.p.store.Events(), 1)
	for _, courseID := range s.b.CourseIDs() {
		e := s.p.store.Enrollment(s.b.UserID, courseID)
		s.Equal(*first.Courses[0].ExpiresAt, e.ExpiresAt())
	}
}

func (s *ProvisioningUseCaseTestSuite) TestProvisionOrder_ExistingEnrollments() {
	tests := []struct {
		name      string
		active    bool
		expiresIn time.Duration
		outcome   enrollment.Outcome
		want      time.Duration
	}{
		{name: "active access ending sooner is extended", active: true, expiresIn: 24 * time.Hour, outcome: enrollment.OutcomeExtended, want: testTerm},
		{name: "active access ending later is left alone", active: true, expiresIn: 2 * testTerm, outcome: enrollment.OutcomeUnchanged, want: 2 * testTerm},
		{name: "deactivated access is granted again", active: false, expiresIn: -time.Hour, outcome: enrollment.OutcomeGranted, want: testTerm},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.cache.EXPECT().Invalidate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			now := s.p.clock.Now()
			courseID := s.b.Items[0].CourseID
			createdAt := now.Add(-48 * time.Hour)
			s.p.store.PutEnrollment(enrollment.Reconstruct(s.b.UserID, courseID, tc.active, now.Add(tc.expiresIn), createdAt, createdAt))

			res, err := s.p.provisioner.ProvisionOrder(s.ctx, s.verified.ID())

			s.Require().NoError(err)
			s.Equal(tc.outcome, res.Courses[0].Outcome)
			e := s.p.store.Enrollment(s.b.UserID, courseID)
			s.True(e.IsActive())
			s.Equal(now.Add(tc.want), e.ExpiresAt())
			s.Equal(createdAt, e.CreatedAt())
		})
	}
}

func (s *ProvisioningUseCaseTestSuite) TestProvisionOrder_Failures() {
	s.Run("partial: one course fails and the order stays verified", func() {
		failing := s.b.Items[1].CourseID
		s.p.store.FailUpserts(failing, 1)

		res, err := s.p.provisioner.ProvisionOrder(s.ctx, s.verified.ID())

		s.True(errs.Is(err, errs.ErrEnrollmentPartialFailure))
		s.False(res.Complete())
		s.False(res.AllFailed())
		s.Equal([]uuid.UUID{failing}, res.Pending())
		s.Error(res.Courses[1].Err)
		s.Equal(order.StatusVerified, s.p.store.Order(s.verified.ID()).Status())

		steps := s.p.store.Steps(s.verified.ID())
		s.Equal(enrollment.OutcomeGranted, steps[0].Outcome)
		s.Equal(enrollment.OutcomeFailed, steps[1].Outcome)
		s.NotEmpty(steps[1].LastError)
		s.Len(s.p.store.CartItems(s.b.UserID), 2)
	})

	s.Run("retry grants only what is still missing", func() {
		s.cache.EXPECT().Invalidate(gomock.Any(), s.b.UserID).Return(nil).Times(1)
		granted := s.p.store.Enrollment(s.b.UserID, s.b.Items[0].CourseID)

		res, err := s.p.provisioner.RetryProvisioning(s.ctx, s.session, s.verified.ID())

		s.Require().NoError(err)
		s.True(res.Complete())
		s.Equal(granted, s.p.store.Enrollment(s.b.UserID, s.b.Items[0].CourseID))
		steps := s.p.store.Steps(s.verified.ID())
		s.Equal(1, steps[0].Attempts)
		s.Equal(2, steps[1].Attempts)
		s.Equal(order.StatusProvisioned, s.p.store.Order(s.verified.ID()).Status())
	})
}

func (s *ProvisioningUseCaseTestSuite) TestProvisionOrder_AllFail() {
	for _, courseID := range s.b.CourseIDs() {
		s.p.store.FailUpserts(courseID, 1)
	}

	res, err := s.p.provisioner.ProvisionOrder(s.ctx, s.verified.ID())

	s.True(errs.Is(err, errs.ErrEnrollmentPartialFailure))
	s.True(res.AllFailed())
	s.Empty(s.p.store.Events())
}

func (s *ProvisioningUseCaseTestSuite) TestProvisionOrder_CacheFailureIsIgnored() {
	s.cache.EXPECT().Invalidate(gomock.Any(), s.b.UserID).Return(errors.New("redis down")).Times(1)

	res, err := s.p.provisioner.ProvisionOrder(s.ctx, s.verified.ID())

	s.Require().NoError(err)
	s.True(res.Complete())
}

func (s *ProvisioningUseCaseTestSuite) TestProvisionOrder_NotProvisionable() {
	pending, err := builder.NewOrderBuilder().WithUser(s.b.UserID).BuildPending("order_gw_2")
	s.Require().NoError(err)
	s.p.store.PutOrder(pending)

	_, err = s.p.provisioner.ProvisionOrder(s.ctx, pending.ID())
	s.True(errs.Is(err, errs.ErrOrderNotProvisionable))

	_, err = s.p.provisioner.ProvisionOrder(s.ctx, uuid.New())
	s.True(errs.Is(err, errs.ErrOrderNotFound))
}

func (s *ProvisioningUseCaseTestSuite) TestRetryProvisioning_Guards() {
	pending, err := builder.NewOrderBuilder().WithUser(s.b.UserID).BuildPending("order_gw_2")
	s.Require().NoError(err)
	s.p.store.PutOrder(pending)

	tests := []struct {
		name    string
		session shared.Session
		orderID uuid.UUID
		target  error
	}{
		{name: "no session", session: shared.Session{}, orderID: s.verified.ID(), target: errs.ErrUnauthenticated},
		{name: "another learner's order", session: shared.NewSession(uuid.New()), orderID: s.verified.ID(), target: errs.ErrOrderNotFound},
		{name: "unknown order", session: s.session, orderID: uuid.New(), target: errs.ErrOrderNotFound},
		{name: "unpaid order", session: s.session, orderID: pending.ID(), target: errs.ErrOrderNotProvisionable},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			res, err := s.p.provisioner.RetryProvisioning(s.ctx, tc.session, tc.orderID)
			s.Nil(res)
			s.True(errs.Is(err, tc.target), "got %v", err)
		})
	}
	s.Empty(s.p.store.Steps(s.verified.ID()))
}

func (s *ProvisioningUseCaseTestSuite) TestGrant() {
	courses := []uuid.UUID{uuid.New(), uuid.New()}
	s.p.store.FailUpserts(courses[1], 1)
	policy, err := enrollment.NewExpiryPolicy(30 * 24 * time.Hour)
	s.Require().NoError(err)

	res, err := s.p.provisioner.Grant(s.ctx, s.b.UserID, courses, policy)

	s.True(errs.Is(err, errs.ErrEnrollmentPartialFailure))
	s.Equal(enrollment.OutcomeGranted, res.Courses[0].Outcome)
	s.Equal(enrollment.OutcomeFailed, res.Courses[1].Outcome)
	s.Equal(s.p.clock.Now().Add(30*24*time.Hour), s.p.store.Enrollment(s.b.UserID, courses[0]).ExpiresAt())
	s.Empty(s.p.store.Steps(uuid.Nil))
}
