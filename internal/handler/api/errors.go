package api

import (
	"net/http"

	"learnhub-checkout/internal/domain/payment"
	"learnhub-checkout/internal/handler/httperr"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target error
	status int
	code   string
	msg    string
}

// First match wins; a cause may carry more than one sentinel mark.
var errorMappings = []errorMapping{
	{errs.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", "Authentication required"},
	{errs.ErrForbidden, http.StatusForbidden, "forbidden", "Order does not belong to the caller"},
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "idempotency_key_required", "Idempotency-Key header is required"},
	{errs.ErrDuplicateCheckout, http.StatusConflict, "duplicate_checkout", "Idempotency key was used for a different request"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "checkout_in_progress", "Checkout with this key is still in progress"},
	{errs.ErrInvalidDiscountCode, http.StatusUnprocessableEntity, "invalid_discount_code", "Discount code is not valid"},
	{errs.ErrEmptyCart, http.StatusUnprocessableEntity, "empty_cart", "Cart is empty"},
	{errs.ErrAmountMismatch, http.StatusConflict, "amount_mismatch", "Prices changed, please review your cart"},
	{errs.ErrZeroAmountCheckout, http.StatusUnprocessableEntity, "zero_amount_checkout", "Discount covers the full price, nothing to pay"},
	{errs.ErrCourseNotFound, http.StatusNotFound, "course_not_found", "Course not found"},
	{errs.ErrCourseAlreadyInCart, http.StatusConflict, "course_already_in_cart", "Course is already in the cart"},
	{errs.ErrAlreadyEnrolled, http.StatusConflict, "already_enrolled", "Already enrolled in this course"},
	{errs.ErrCartItemNotFound, http.StatusNotFound, "cart_item_not_found", "Cart item not found"},
	{errs.ErrPaymentCancelledByUser, http.StatusConflict, "payment_cancelled", "Payment was cancelled, you can retry checkout"},
	{errs.ErrPaymentFailedAtGateway, http.StatusPaymentRequired, "payment_failed", "Payment failed, you can retry checkout"},
	{errs.ErrGatewayUnavailable, http.StatusServiceUnavailable, "gateway_unavailable", "Payment service is unavailable"},
	{errs.ErrSignatureMismatch, http.StatusUnprocessableEntity, "signature_mismatch", "Payment could not be verified, please contact support"},
	{errs.ErrOrderNotFound, http.StatusNotFound, "order_not_found", "Order not found"},
	{errs.ErrOrderNotVerifiable, http.StatusConflict, "order_not_verifiable", "Order cannot be verified in its current state"},
	{errs.ErrOrderNotProvisionable, http.StatusConflict, "order_not_provisionable", "Order is not awaiting enrollment"},
	{errs.ErrEnrollmentPartialFailure, http.StatusAccepted, "enrollment_partial_failure", "Some enrollments are still pending"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "invalid_cursor", "Invalid cursor"},
	{payment.ErrUnknownOutcome, http.StatusBadRequest, "invalid_outcome", "Unrecognised payment outcome"},
	{errs.ErrDomainValidation, http.StatusBadRequest, "validation_failed", "Invalid request"},
	{errs.ErrPersistenceFailure, http.StatusInternalServerError, "persistence_failure", "Internal server error"},
}

func statusFor(err error) (int, string, string) {
	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			return m.status, m.code, m.msg
		}
	}
	return http.StatusInternalServerError, "internal_error", "Internal server error"
}

func abortWithMappedError(c *gin.Context, err error) {
	status, code, msg := statusFor(err)
	var detail any
	if d := errs.Details(err); len(d) > 0 && status < http.StatusInternalServerError {
		detail = d
	}
	httperr.AbortWithCode(c, status, err, code, msg, detail)
}

func abortUnauthorized(c *gin.Context) {
	httperr.AbortWithCode(c, http.StatusUnauthorized, nil, "unauthenticated", "Unauthorized", nil)
}

func abortInvalidRequest(c *gin.Context, err error) {
	httperr.AbortWithCode(c, http.StatusBadRequest, err, "invalid_request", "Invalid request", nil)
}
