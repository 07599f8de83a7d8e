package shared

import (
	"time"

	"learnhub-checkout/internal/domain/enrollment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session is the authenticated caller. It is passed explicitly into every
// pipeline operation; nothing reads the current user from ambient state.
type Session struct {
	UserID uuid.UUID
}

func NewSession(userID uuid.UUID) Session {
	return Session{UserID: userID}
}

func (s Session) Valid() bool { return s.UserID != uuid.Nil }

type CourseSnapshot struct {
	ID          uuid.UUID
	Title       string
	PriceMinor  int64
	IsPublished bool
}

type DiscountSnapshot struct {
	Code                string
	DiscountPercent     *decimal.Decimal
	DiscountAmountMinor *int64
	IsActive            bool
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Status        string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

// ProvisioningStep is one row of the per-order saga log.
type ProvisioningStep struct {
	OrderID   uuid.UUID
	CourseID  uuid.UUID
	Outcome   enrollment.Outcome
	Attempts  int
	ExpiresAt *time.Time
	LastError string
}

// OutboxEvent is written in the same transaction as the state change it describes.
type OutboxEvent struct {
	EventID     uuid.UUID
	EventType   string
	AggregateID string
	Payload     []byte
	CreatedAt   time.Time
}

type OutboxMessage struct {
	ID int64
	OutboxEvent
}

const (
	EventOrderCreated           = "order.created"
	EventOrderVerified          = "order.verified"
	EventOrderFailed            = "order.failed"
	EventOrderProvisioned       = "order.provisioned"
	EventOrderDuplicatePurchase = "order.duplicate_purchase"
)
