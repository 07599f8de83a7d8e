package response

import (
	"time"

	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderItemResponse struct {
	CourseID   uuid.UUID `json:"courseId"`
	CourseName string    `json:"courseName"`
	PriceMinor int64     `json:"price"`
}

type ProvisioningResponse struct {
	CourseID  uuid.UUID  `json:"courseId"`
	Status    string     `json:"status"`
	Attempts  int32      `json:"attempts"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type OrderResponse struct {
	ID            uuid.UUID              `json:"orderId"`
	Status        string                 `json:"status"`
	PaymentMode   string                 `json:"paymentMode"`
	SubtotalMinor int64                  `json:"subtotal"`
	DiscountMinor int64                  `json:"discount"`
	AmountMinor   int64                  `json:"amount"`
	Currency      string                 `json:"currency"`
	DiscountCode  *string                `json:"discountCode,omitempty"`
	FailureReason *string                `json:"failureReason,omitempty"`
	Items         []OrderItemResponse    `json:"items"`
	Provisioning  []ProvisioningResponse `json:"provisioning"`
	CreatedAt     time.Time              `json:"createdAt"`
	VerifiedAt    *time.Time             `json:"verifiedAt,omitempty"`
	CompletedAt   *time.Time             `json:"completedAt,omitempty"`
}

// FromOrderView drops provisioning LastError; it is internal diagnostics.
func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	res := &OrderResponse{
		Items:        []OrderItemResponse{},
		Provisioning: []ProvisioningResponse{},
	}
	if err := copier.Copy(res, v); err != nil {
		return nil, errs.Wrap(err, "map order")
	}
	return res, nil
}

type OrderListItemResponse struct {
	ID          uuid.UUID  `json:"orderId"`
	Status      string     `json:"status"`
	PaymentMode string     `json:"paymentMode"`
	AmountMinor int64      `json:"amount"`
	Currency    string     `json:"currency"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type OrderListResponse struct {
	Items      []OrderListItemResponse `json:"items"`
	NextCursor *string                 `json:"next_cursor,omitempty"`
}

func FromOrderList(items []*queries.OrderListItem, next *queries.Cursor) (*OrderListResponse, error) {
	res := &OrderListResponse{Items: make([]OrderListItemResponse, 0, len(items))}
	for i, it := range items {
		var row OrderListItemResponse
		if err := copier.Copy(&row, it); err != nil {
			return nil, errs.Wrapf(err, "map order list row %d", i)
		}
		res.Items = append(res.Items, row)
	}
	if next != nil && next.After != "" {
		cursor := next.After
		res.NextCursor = &cursor
	}
	return res, nil
}
