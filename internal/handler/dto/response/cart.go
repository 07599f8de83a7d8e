package response

import (
	"time"

	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CartItemResponse struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"courseId"`
	CourseName string    `json:"courseName"`
	PriceMinor int64     `json:"price"`
	AddedAt    time.Time `json:"addedAt"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalMinor int64              `json:"total"`
}

func FromCartItemView(v *queries.CartItemView) (*CartItemResponse, error) {
	var res CartItemResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrap(err, "map cart item")
	}
	return &res, nil
}

func FromCartView(v *queries.CartView) (*CartResponse, error) {
	res := &CartResponse{Items: []CartItemResponse{}}
	if v == nil {
		return res, nil
	}
	if err := copier.Copy(&res.Items, v.Items); err != nil {
		return nil, errs.Wrap(err, "map cart items")
	}
	res.TotalMinor = v.TotalMinor
	return res, nil
}

type DiscountPreviewResponse struct {
	Code          string `json:"code"`
	SubtotalMinor int64  `json:"subtotal"`
	DiscountMinor int64  `json:"discount"`
	TotalMinor    int64  `json:"total"`
}

func FromDiscountPreview(p *commands.DiscountPreview) (*DiscountPreviewResponse, error) {
	var res DiscountPreviewResponse
	if err := copier.Copy(&res, p); err != nil {
		return nil, errs.Wrap(err, "map discount preview")
	}
	return &res, nil
}
