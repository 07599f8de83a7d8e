package queries

import (
	"time"

	"github.com/google/uuid"
)

type CartItemView struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"course_id"`
	CourseName string    `json:"course_name"`
	PriceMinor int64     `json:"price_minor"`
	AddedAt    time.Time `json:"added_at"`
}

// CartView is what the cart cache stores; TotalMinor is the sum of row snapshots.
type CartView struct {
	UserID     uuid.UUID      `json:"user_id"`
	Items      []CartItemView `json:"items"`
	TotalMinor int64          `json:"total_minor"`
}

type OrderItemView struct {
	CourseID   uuid.UUID `json:"course_id"`
	CourseName string    `json:"course_name"`
	PriceMinor int64     `json:"price_minor"`
}

type ProvisioningView struct {
	CourseID  uuid.UUID  `json:"course_id"`
	Status    string     `json:"status"`
	Attempts  int32      `json:"attempts"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	LastError *string    `json:"last_error,omitempty"`
}

type OrderView struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"user_id"`
	Status        string             `json:"status"`
	PaymentMode   string             `json:"payment_mode"`
	SubtotalMinor int64              `json:"subtotal_minor"`
	DiscountMinor int64              `json:"discount_minor"`
	AmountMinor   int64              `json:"amount_minor"`
	Currency      string             `json:"currency"`
	DiscountCode  *string            `json:"discount_code,omitempty"`
	FailureReason *string            `json:"failure_reason,omitempty"`
	Items         []OrderItemView    `json:"items"`
	Provisioning  []ProvisioningView `json:"provisioning"`
	CreatedAt     time.Time          `json:"created_at"`
	VerifiedAt    *time.Time         `json:"verified_at,omitempty"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
}

type OrderListItem struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	PaymentMode string     `json:"payment_mode"`
	AmountMinor int64      `json:"amount_minor"`
	Currency    string     `json:"currency"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type EnrollmentView struct {
	CourseID    uuid.UUID `json:"course_id"`
	CourseTitle string    `json:"course_title"`
	IsActive    bool      `json:"is_active"`
	ExpiresAt   time.Time `json:"expires_at"`
	HasAccess   bool      `json:"has_access"`
}

type AccessView struct {
	CourseID  uuid.UUID  `json:"course_id"`
	HasAccess bool       `json:"has_access"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
