//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"learnhub-checkout/internal/handler/api"
	resdto "learnhub-checkout/internal/handler/dto/response"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/queries"
	"learnhub-checkout/internal/usecase/shared"
	"learnhub-checkout/tests/common/httptest"
	commandsmock "learnhub-checkout/tests/mock/commands"
	queriesmock "learnhub-checkout/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCartCommands
	mockQueries  *queriesmock.MockCartQueries
	mockDiscount *commandsmock.MockDiscountEngine
	session      shared.Session
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.mockDiscount = commandsmock.NewMockDiscountEngine(s.mockCtrl)
	handler := api.NewCartHandler(s.mockCommands, s.mockQueries, s.mockDiscount)

	userID := uuid.New()
	s.session = shared.NewSession(userID)
	auth := testAuth(userID)

	s.router.GET("/cart", auth, handler.Get)
	s.router.POST("/cart/items", auth, handler.Add)
	s.router.DELETE("/cart/items/:id", auth, handler.Remove)
	s.router.POST("/discounts/preview", auth, handler.PreviewDiscount)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func (s *CartHandlerTestSuite) TestGet() {
	item := queries.CartItemView{ID: uuid.New(), CourseID: uuid.New(), CourseName: "Go Fundamentals", PriceMinor: 2000, AddedAt: time.Now().UTC()}

	s.Run("success: items and total", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), s.session).
			Return(&queries.CartView{UserID: s.session.UserID, Items: []queries.CartItemView{item}, TotalMinor: 2000}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "bearer-token")

		var body resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Items, 1)
		s.Equal(item.CourseID, body.Items[0].CourseID)
		s.Equal(int64(2000), body.Items[0].PriceMinor)
		s.Equal(int64(2000), body.TotalMinor)
	})

	s.Run("success: empty cart renders an empty list", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), s.session).
			Return(&queries.CartView{UserID: s.session.UserID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "bearer-token")

		var body resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Zero(body.TotalMinor)
	})

	s.Run("error: 401 without a session", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 500 on read failure", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("conn reset"), errs.ErrPersistenceFailure)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusInternalServerError, "persistence_failure")
	})
}

func (s *CartHandlerTestSuite) TestAdd() {
	courseID := uuid.New()

	s.Run("success: 201 with the snapshotted row", func() {
		s.mockCommands.EXPECT().Add(gomock.Any(), s.session, courseID).
			Return(&queries.CartItemView{ID: uuid.New(), CourseID: courseID, CourseName: "Go Fundamentals", PriceMinor: 2000}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cart/items", map[string]any{"courseId": courseID}, "bearer-token")

		var body resdto.CartItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(courseID, body.CourseID)
		s.Equal("Go Fundamentals", body.CourseName)
	})

	s.Run("error: 400 without courseId", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cart/items", map[string]any{}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name   string
			err    error
			status int
			code   string
		}{
			{name: "duplicate", err: errs.ErrCourseAlreadyInCart, status: http.StatusConflict, code: "course_already_in_cart"},
			{name: "owned", err: errs.ErrAlreadyEnrolled, status: http.StatusConflict, code: "already_enrolled"},
			{name: "unknown course", err: errs.ErrCourseNotFound, status: http.StatusNotFound, code: "course_not_found"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Add(gomock.Any(), gomock.Any(), courseID).Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/cart/items", map[string]any{"courseId": courseID}, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.status, tc.code)
			})
		}
	})
}

func (s *CartHandlerTestSuite) TestRemove() {
	itemID := uuid.New()
	url := "/cart/items/" + itemID.String()

	s.Run("success: 204", func() {
		s.mockCommands.EXPECT().Remove(gomock.Any(), s.session, itemID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for a row that is not the caller's", func() {
		s.mockCommands.EXPECT().Remove(gomock.Any(), s.session, itemID).Return(errs.ErrCartItemNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "cart_item_not_found")
	})

	s.Run("error: 400 for an invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *CartHandlerTestSuite) TestPreviewDiscount() {
	s.Run("success: 200 with the computed totals", func() {
		s.mockDiscount.EXPECT().Preview(gomock.Any(), s.session, "LAUNCH10").
			Return(&commands.DiscountPreview{Code: "LAUNCH10", SubtotalMinor: 3500, DiscountMinor: 350, TotalMinor: 3150}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/discounts/preview", map[string]any{"code": "LAUNCH10"}, "bearer-token")

		var body resdto.DiscountPreviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.DiscountPreviewResponse{Code: "LAUNCH10", SubtotalMinor: 3500, DiscountMinor: 350, TotalMinor: 3150}, body)
	})

	s.Run("error: 422 for an unknown code", func() {
		s.mockDiscount.EXPECT().Preview(gomock.Any(), gomock.Any(), "NOPE").Return(nil, errs.ErrInvalidDiscountCode).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/discounts/preview", map[string]any{"code": "NOPE"}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "invalid_discount_code")
	})

	s.Run("error: 400 without a code", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/discounts/preview", map[string]any{}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "invalid_request")
	})
}
