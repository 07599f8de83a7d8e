package api

import (
	"net/http"

	reqdto "learnhub-checkout/internal/handler/dto/request"
	resdto "learnhub-checkout/internal/handler/dto/response"
	"learnhub-checkout/internal/handler/middleware"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cmds     commands.CartCommands
	q        queries.CartQueries
	discount commands.DiscountEngine
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries, discount commands.DiscountEngine) *CartHandler {
	return &CartHandler{cmds: cmds, q: q, discount: discount}
}

// @Summary Get cart
// @Description Items in the caller's cart with their snapshotted prices and the total
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Failure 401 {object} httperr.Response
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	view, err := h.q.Get(c.Request.Context(), session)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromCartView(view)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Add course to cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddCartItemRequest true "Course to add"
// @Success 201 {object} resdto.CartItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	item, err := h.cmds.Add(c.Request.Context(), session, req.CourseID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromCartItemView(item)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Remove cart item
// @Tags cart
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cart/items/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
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
	if err := h.cmds.Remove(c.Request.Context(), session, id); err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Preview discount
// @Description Applies a discount code to the caller's current cart total without creating an order
// @Tags discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DiscountPreviewRequest true "Discount code"
// @Success 200 {object} resdto.DiscountPreviewResponse
// @Failure 422 {object} httperr.Response
// @Router /discounts/preview [post]
func (h *CartHandler) PreviewDiscount(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	var req reqdto.DiscountPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	preview, err := h.discount.Preview(c.Request.Context(), session, req.Code)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromDiscountPreview(preview)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
