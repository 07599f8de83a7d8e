package api

import (
	"net/http"

	resdto "learnhub-checkout/internal/handler/dto/response"
	"learnhub-checkout/internal/handler/middleware"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EnrollmentHandler struct {
	q queries.EnrollmentQueries
}

func NewEnrollmentHandler(q queries.EnrollmentQueries) *EnrollmentHandler {
	return &EnrollmentHandler{q: q}
}

// @Summary List enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.EnrollmentResponse
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	views, err := h.q.List(c.Request.Context(), session)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromEnrollmentViews(views)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Check course access
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} resdto.AccessResponse
// @Router /courses/{id}/access [get]
func (h *EnrollmentHandler) Access(c *gin.Context) {
	session, ok := middleware.Session(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortInvalidRequest(c, err)
		return
	}
	view, err := h.q.Access(c.Request.Context(), session, courseID)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	res, err := resdto.FromAccessView(view)
	if err != nil {
		abortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
