package api

import (
	"net/http"

	"learnhub-checkout/internal/domain/payment"
	reqdto "learnhub-checkout/internal/handler/dto/request"
	resdto "learnhub-checkout/internal/handler/dto/response"
	"learnhub-checkout/internal/handler/middleware"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	checkout commands.CheckoutCommands
	verifier commands.VerificationCommands
	outcomes commands.PaymentOutcomeAdapter
}

func NewCheckoutHandler(
	checkout commands.CheckoutCommands,
	verifier commands.VerificationCommands,
	outcomes commands.PaymentOutcomeAdapter,
) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, verifier: verifier, outcomes: outcomes}
}

// @Summary Create order
// @Description Freezes the selected cart courses into an order and opens a payment session.
// @Description Without a configured processor and with demo mode on, the order is verified and provisioned directly.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key (UUID)"
// @Param request body reqdto.CreateOrderRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Success 200 {object} resdto.CheckoutResponse "Replayed"
// @Success 202 {object} resdto.CheckoutResponse "Demo order verified, enrollment pending"
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /checkout/orders [post]
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	key, err := idempotencyKey(c)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}

	result, err := h.checkout.CreateOrder(c.Request.Context(), session, req.ToCommand(), key)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}

	status := http.StatusCreated
	switch {
	case result.IsReplayed:
		status = http.StatusOK
	case result.Provision != nil && !result.Provision.Complete():
		status = http.StatusAccepted
	}
	c.JSON(status, resdto.FromCheckoutResult(result))
}

// @Summary Deliver payment outcome
// @Description Forwards the processor widget result. Success is verified; failure and cancellation leave the order PENDING.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.PaymentOutcomeRequest true "Widget outcome"
// @Success 200 {object} resdto.VerifyResponse
// @Success 202 {object} resdto.VerifyResponse
// @Failure 402 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /checkout/orders/{id}/outcome [post]
func (h *CheckoutHandler) DeliverOutcome(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}
	var req reqdto.PaymentOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	outcome, err := payment.DecodeOutcome(req.Outcome)
	if err != nil {
		abortWithMappedError(c, errs.Mark(err, errs.ErrDomainValidation))
		return
	}

	result, err := h.outcomes.Deliver(c.Request.Context(), session, orderID, outcome, req.ExpectedItems())
	writeVerifyResult(c, result, err)
}

// @Summary Verify payment
// @Description Checks the processor signature and the item snapshot, then provisions enrollments.
// @Description Rejections answer 200 with verified=false; a verified order with pending enrollments answers 202.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.VerifyPaymentRequest true "Verification request"
// @Success 200 {object} resdto.VerifyResponse
// @Success 202 {object} resdto.VerifyResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/verify [post]
func (h *CheckoutHandler) Verify(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var req reqdto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	result, err := h.verifier.Verify(c.Request.Context(), session, req.ToCommand())
	writeVerifyResult(c, result, err)
}

// writeVerifyResult treats a result returned together with an error as a committed rejection.
func writeVerifyResult(c *gin.Context, result *commands.VerifyResult, err error) {
	if err != nil && result == nil {
		abortWithMappedError(c, err)
		return
	}
	res := resdto.FromVerifyResult(result)
	if err != nil {
		_ = c.Error(err)
		_, code, _ := statusFor(err)
		res.Reason = code
		c.JSON(http.StatusOK, res)
		return
	}
	if result.ProvisionPending() {
		c.JSON(http.StatusAccepted, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func idempotencyKey(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader(middleware.IdempotencyKeyHeader)
	if raw == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Wrap(errs.ErrIdempotencyKeyRequired, "idempotency key must be a uuid")
	}
	return key, nil
}
