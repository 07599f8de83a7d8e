//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/handler/api"
	resdto "learnhub-checkout/internal/handler/dto/response"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/queries"
	"learnhub-checkout/internal/usecase/shared"
	"learnhub-checkout/tests/common/builder"
	"learnhub-checkout/tests/common/httptest"
	commandsmock "learnhub-checkout/tests/mock/commands"
	queriesmock "learnhub-checkout/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockQueries     *queriesmock.MockOrderQueries
	mockProvisioner *commandsmock.MockProvisioningCommands
	session         shared.Session
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.mockProvisioner = commandsmock.NewMockProvisioningCommands(s.mockCtrl)
	handler := api.NewOrderHandler(s.mockQueries, s.mockProvisioner)

	userID := uuid.New()
	s.session = shared.NewSession(userID)
	auth := testAuth(userID)

	s.router.GET("/orders", auth, handler.List)
	s.router.GET("/orders/:id", auth, handler.Get)
	s.router.POST("/orders/:id/provision", auth, handler.RetryProvisioning)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

// ================================================================================
// TestGet
// ================================================================================

func (s *OrderHandlerTestSuite) TestGet() {
	b := builder.NewOrderBuilder().WithUser(s.session.UserID)
	o, err := b.BuildPending("order_gw_1")
	s.Require().NoError(err)
	view := b.BuildView(o)
	url := "/orders/" + o.ID().String()

	s.Run("success: 200 with items", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), s.session, o.ID()).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(o.ID(), body.ID)
		s.Equal("PENDING", body.Status)
		s.Equal(int64(3500), body.AmountMinor)
		s.Len(body.Items, 2)
		s.Empty(body.Provisioning)
	})

	s.Run("error: 404 for another learner's order", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), gomock.Any(), o.ID()).Return(nil, errs.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 400 for an invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})

	s.Run("error: 401 without a session", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "unauthenticated")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *OrderHandlerTestSuite) TestList() {
	items := []*queries.OrderListItem{
		{ID: uuid.New(), Status: "PROVISIONED", PaymentMode: "gateway", AmountMinor: 3500, Currency: "INR", CreatedAt: time.Now().UTC()},
	}

	s.Run("success: default limit, next cursor passed through", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.session, (*queries.Cursor)(nil), queries.DefaultListLimit).
			Return(items, &queries.Cursor{After: "next-page"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "bearer-token")

		var body resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Items, 1)
		s.Equal(items[0].ID, body.Items[0].ID)
		s.Require().NotNil(body.NextCursor)
		s.Equal("next-page", *body.NextCursor)
	})

	s.Run("success: cursor and limit from the query string", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.session, &queries.Cursor{After: "abc"}, 5).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=5&cursor=abc", nil, "bearer-token")

		var body resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Nil(body.NextCursor)
	})

	s.Run("error: 400 for a non-numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=ten", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation_failed")
	})

	s.Run("error: 400 for a tampered cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Wrap(queries.ErrInvalidCursor, "unrecognised cursor format")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?cursor=zzz", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_cursor")
	})
}

// ================================================================================
// TestRetryProvisioning
// ================================================================================

func (s *OrderHandlerTestSuite) TestRetryProvisioning() {
	orderID := uuid.New()
	url := "/orders/" + orderID.String() + "/provision"
	expiresAt := time.Now().UTC().Add(365 * 24 * time.Hour)
	done := &commands.ProvisionResult{OrderID: orderID, Courses: []commands.CourseProvision{
		{CourseID: uuid.New(), Outcome: enrollment.OutcomeGranted, ExpiresAt: &expiresAt},
		{CourseID: uuid.New(), Outcome: enrollment.OutcomeUnchanged, ExpiresAt: &expiresAt},
	}}

	s.Run("success: 200 when everything is granted", func() {
		s.mockProvisioner.EXPECT().RetryProvisioning(gomock.Any(), s.session, orderID).Return(done, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.ProvisionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Complete)
		s.Equal("unchanged", body.Courses[1].Outcome)
	})

	s.Run("partial: 202 with the per-course report", func() {
		partial := &commands.ProvisionResult{OrderID: orderID, Courses: []commands.CourseProvision{
			done.Courses[0],
			{CourseID: uuid.New(), Outcome: enrollment.OutcomeFailed, Err: errors.New("deadlock detected")},
		}}
		s.mockProvisioner.EXPECT().RetryProvisioning(gomock.Any(), s.session, orderID).
			Return(partial, errs.ErrEnrollmentPartialFailure).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.ProvisionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &body)
		s.False(body.Complete)
		s.False(body.AllFailed)
		s.NotContains(rec.Body.String(), "deadlock")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name   string
			err    error
			status int
			code   string
		}{
			{name: "unpaid order", err: errs.ErrOrderNotProvisionable, status: http.StatusConflict, code: "order_not_provisionable"},
			{name: "unknown order", err: errs.ErrOrderNotFound, status: http.StatusNotFound, code: "order_not_found"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockProvisioner.EXPECT().RetryProvisioning(gomock.Any(), gomock.Any(), orderID).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.status, tc.code)
			})
		}
	})
}
