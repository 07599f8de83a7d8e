package api

import (
	"net/http"
	"strconv"

	resdto "learnhub-checkout/internal/handler/dto/response"
	"learnhub-checkout/internal/handler/middleware"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	q           queries.OrderQueries
	provisioner commands.ProvisioningCommands
}

func NewOrderHandler(q queries.OrderQueries, provisioner commands.ProvisioningCommands) *OrderHandler {
	return &OrderHandler{q: q, provisioner: provisioner}
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}
	view, err := h.q.Get(c.Request.Context(), session, id)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromOrderView(view)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List orders
// @Description Caller's orders, newest first, keyset paginated
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param cursor query string false "Cursor from the previous page"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	limit := queries.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			abortWithMappedError(c, errs.Mark(err, errs.ErrDomainValidation))
			return
		}
		limit = n
	}
	var after *queries.Cursor
	if raw := c.Query("cursor"); raw != "" {
		after = &queries.Cursor{After: raw}
	}

	items, next, err := h.q.List(c.Request.Context(), session, after, limit)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromOrderList(items, next)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Retry enrollment provisioning
// @Description Grants the courses of a verified order that are still pending. Never re-verifies or re-charges.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.ProvisionResponse
// @Success 202 {object} resdto.ProvisionResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id}/provision [post]
func (h *OrderHandler) RetryProvisioning(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}
	result, err := h.provisioner.RetryProvisioning(c.Request.Context(), session, id)
	if err != nil {
		if result != nil && errs.Is(err, errs.ErrEnrollmentPartialFailure) {
			_ = c.Error(err)
			c.JSON(http.StatusAccepted, resdto.FromProvisionResult(result))
			return
		}
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProvisionResult(result))
}
