//go:build e2e

package checkout_test

import (
	"net/http"
	"testing"

	"learnhub-checkout/internal/domain/payment"
	resdto "learnhub-checkout/internal/handler/dto/response"
	"learnhub-checkout/tests/common/authtest"
	"learnhub-checkout/tests/common/dbtest"
	"learnhub-checkout/tests/common/httptest"
	"learnhub-checkout/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CheckoutE2ETestSuite struct {
	e2e.SharedSuite
}

func TestCheckoutE2ETestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutE2ETestSuite))
}

type checkoutFixture struct {
	token   string
	courses []map[string]any
	total   int64
}

// seeds two courses and puts both into a fresh learner's cart
func (s *CheckoutE2ETestSuite) prepareCart() checkoutFixture {
	t := s.T()
	token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, uuid.New())

	goID := dbtest.CreateCourse(t, s.DB, "Go Fundamentals", 1500)
	pgID := dbtest.CreateCourse(t, s.DB, "Postgres Internals", 2000)

	for _, id := range []uuid.UUID{goID, pgID} {
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/cart/items", map[string]any{"courseId": id}, token)
		var item resdto.CartItemResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusCreated, &item)
		s.Equal(id, item.CourseID)
	}

	return checkoutFixture{
		token: token,
		courses: []map[string]any{
			{"id": goID, "price": 1500, "name": "Go Fundamentals"},
			{"id": pgID, "price": 2000, "name": "Postgres Internals"},
		},
		total: 3500,
	}
}

func (s *CheckoutE2ETestSuite) createOrder(f checkoutFixture, body map[string]any, key string, status int) resdto.CheckoutResponse {
	rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/checkout/orders", body, f.token,
		map[string]string{"Idempotency-Key": key})

	var res resdto.CheckoutResponse
	httptest.AssertSuccessResponse(s.T(), rec, status, &res)
	return res
}

func (s *CheckoutE2ETestSuite) TestGatewayCheckout() {
	s.Run("cart to enrollment with a genuine signature", func() {
		f := s.prepareCart()

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/cart", nil, f.token)
		var cart resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cart)
		s.Len(cart.Items, 2)
		s.Equal(f.total, cart.TotalMinor)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/discounts/preview", map[string]any{"code": "launch10"}, f.token)
		var preview resdto.DiscountPreviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &preview)
		s.Equal(int64(350), preview.DiscountMinor)
		s.Equal(int64(3150), preview.TotalMinor)

		body := map[string]any{
			"courses":      f.courses,
			"amount":       3150,
			"promoCode":    "LAUNCH10",
			"customerInfo": map[string]any{"name": "Asha", "email": "asha@example.com", "contact": "9999999999"},
		}
		key := uuid.NewString()

		created := s.createOrder(f, body, key, http.StatusCreated)
		s.Equal("PENDING", created.Status)
		s.Equal("gateway", created.PaymentMode)
		s.Equal(int64(3150), created.Amount)
		s.Equal(s.Config.Payment.KeyID, created.GatewayPublicKey)
		s.NotEmpty(created.GatewayOrderID)
		s.Require().NotNil(created.Checkout)
		s.Equal(created.GatewayOrderID, created.Checkout.OrderID)

		replayed := s.createOrder(f, body, key, http.StatusOK)
		s.True(replayed.Replayed)
		s.Equal(created.OrderID, replayed.OrderID)

		signer, err := payment.NewSigner(s.Config.Payment.KeySecret)
		s.Require().NoError(err)
		paymentID := "pay_" + uuid.NewString()[:8]
		verify := map[string]any{
			"orderId":        created.OrderID,
			"gatewayOrderId": created.GatewayOrderID,
			"paymentId":      paymentID,
			"signature":      signer.Sign(created.GatewayOrderID, paymentID),
			"courses":        f.courses,
		}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/verify", verify, f.token)
		var verified resdto.VerifyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &verified)
		s.True(verified.Verified)
		s.Equal("PROVISIONED", verified.Status)
		s.Require().NotNil(verified.Provision)
		s.True(verified.Provision.Complete)
		s.Len(verified.Provision.Courses, 2)

		courseID := f.courses[0]["id"].(uuid.UUID)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/courses/"+courseID.String()+"/access", nil, f.token)
		var access resdto.AccessResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &access)
		s.True(access.HasAccess)
		s.NotNil(access.ExpiresAt)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders", nil, f.token)
		var orders resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &orders)
		s.Require().Len(orders.Items, 1)
		s.Equal("PROVISIONED", orders.Items[0].Status)
		s.Nil(orders.NextCursor)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/cart", nil, f.token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cart)
		s.Empty(cart.Items)

		// created, verified, provisioned
		s.Equal(3, dbtest.CountUnsentEvents(s.T(), s.DB))
	})

	s.Run("forged signature fails the order", func() {
		f := s.prepareCart()
		body := map[string]any{"courses": f.courses}
		created := s.createOrder(f, body, uuid.NewString(), http.StatusCreated)

		verify := map[string]any{
			"orderId":        created.OrderID,
			"gatewayOrderId": created.GatewayOrderID,
			"paymentId":      "pay_forged",
			"signature":      "deadbeef",
			"courses":        f.courses,
		}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/payments/verify", verify, f.token)
		var res resdto.VerifyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.False(res.Verified)
		s.Equal("signature_mismatch", res.Reason)
		s.Equal("FAILED", res.Status)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders/"+created.OrderID.String(), nil, f.token)
		var detail resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &detail)
		s.Equal("FAILED", detail.Status)
		s.Require().NotNil(detail.FailureReason)
		s.Equal("signature_mismatch", *detail.FailureReason)
	})

	s.Run("reused idempotency key with a different body is rejected", func() {
		f := s.prepareCart()
		key := uuid.NewString()
		s.createOrder(f, map[string]any{"courses": f.courses}, key, http.StatusCreated)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/checkout/orders",
			map[string]any{"courses": f.courses[:1]}, f.token, map[string]string{"Idempotency-Key": key})
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "duplicate_checkout")
	})

	s.Run("client amount that disagrees with the cart is rejected", func() {
		f := s.prepareCart()
		rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/checkout/orders",
			map[string]any{"courses": f.courses, "amount": 1}, f.token, map[string]string{"Idempotency-Key": uuid.NewString()})
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "amount_mismatch")
	})

	s.Run("unauthenticated requests are refused", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/cart", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")

		expired := authtest.NewJWTHelper(s.Config.JWT).CreateExpiredToken(s.T(), uuid.New())
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/cart", nil, expired)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *CheckoutE2ETestSuite) TestCartAndDiscounts() {
	s.Run("unpublished course cannot be added", func() {
		token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), uuid.New())
		id := dbtest.CreateCourse(s.T(), s.DB, "Retired Course", 900)
		dbtest.UnpublishCourse(s.T(), s.DB, id)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/cart/items", map[string]any{"courseId": id}, token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "course_not_found")
	})

	s.Run("same course twice is rejected", func() {
		f := s.prepareCart()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/cart/items", map[string]any{"courseId": f.courses[0]["id"]}, f.token)
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "course_already_in_cart")
	})

	s.Run("removing an item updates the cached cart", func() {
		f := s.prepareCart()
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/cart", nil, f.token)
		var cart resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cart)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Content-Type": "application/json; charset=utf-8"})
		s.Require().Len(cart.Items, 2)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/cart/items/"+cart.Items[0].ID.String(), nil, f.token)
		s.Equal(http.StatusNoContent, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/cart", nil, f.token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cart)
		s.Len(cart.Items, 1)
	})

	s.Run("discount previews", func() {
		f := s.prepareCart()
		dbtest.CreateFlatDiscount(s.T(), s.DB, "FLAT5000", 5000)
		dbtest.CreatePercentDiscount(s.T(), s.DB, "HALF", "50")

		testCases := []struct {
			code     string
			discount int64
			total    int64
		}{
			{code: "half", discount: 1750, total: 1750},
			{code: "FLAT5000", discount: 3500, total: 0},
		}
		for _, tc := range testCases {
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/discounts/preview", map[string]any{"code": tc.code}, f.token)
			var preview resdto.DiscountPreviewResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &preview)
			s.Equal(tc.discount, preview.DiscountMinor, tc.code)
			s.Equal(tc.total, preview.TotalMinor, tc.code)
		}

		for _, code := range []string{"RETIRED", "NOPE"} {
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/discounts/preview", map[string]any{"code": code}, f.token)
			httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "invalid_discount_code")
		}
	})
}
