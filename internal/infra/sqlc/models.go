package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Courses struct {
	ID          uuid.UUID
	Title       string
	PriceMinor  int64
	IsPublished bool
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

type CartItems struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	CourseID         uuid.UUID
	CourseName       string
	CoursePriceMinor int64
	CreatedAt        pgtype.Timestamptz
}

type DiscountCodes struct {
	Code                string
	DiscountPercent     pgtype.Numeric
	DiscountAmountMinor pgtype.Int8
	IsActive            bool
}

type Orders struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SubtotalMinor    int64
	DiscountMinor    int64
	AmountMinor      int64
	Currency         string
	DiscountCode     pgtype.Text
	Status           string
	PaymentMode      string
	GatewaySessionID pgtype.Text
	PaymentID        pgtype.Text
	FailureReason    pgtype.Text
	CustomerName     string
	CustomerEmail    string
	CustomerContact  string
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
	VerifiedAt       pgtype.Timestamptz
	CompletedAt      pgtype.Timestamptz
}

type OrderItems struct {
	OrderID    uuid.UUID
	CourseID   uuid.UUID
	CourseName string
	PriceMinor int64
	Position   int32
}

type OrderProvisioning struct {
	OrderID   uuid.UUID
	CourseID  uuid.UUID
	Status    string
	Attempts  int32
	ExpiresAt pgtype.Timestamptz
	LastError pgtype.Text
	UpdatedAt pgtype.Timestamptz
}

type Enrollments struct {
	StudentID uuid.UUID
	CourseID  uuid.UUID
	IsActive  bool
	ExpiresAt pgtype.Timestamptz
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type PaymentEvents struct {
	PaymentID  string
	OrderID    uuid.UUID
	Outcome    string
	ReceivedAt pgtype.Timestamptz
}

type IdempotencyKeys struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Endpoint      string
	RequestHash   string
	Status        string
	ResultOrderID pgtype.UUID
	ExpiresAt     pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type OutboxEvents struct {
	ID          int64
	EventID     uuid.UUID
	EventType   string
	AggregateID string
	Payload     []byte
	CreatedAt   pgtype.Timestamptz
	SentAt      pgtype.Timestamptz
}
