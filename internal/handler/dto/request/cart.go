package request

import (
	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	CourseID uuid.UUID `json:"courseId" binding:"required"`
}

type DiscountPreviewRequest struct {
	Code string `json:"code" binding:"required"`
}
