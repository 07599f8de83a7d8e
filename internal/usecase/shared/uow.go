package shared

import (
	"context"
	"time"

	"learnhub-checkout/internal/domain/cart"
	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/infra/sqlc"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Carts() CartRepository
	Orders() OrderRepository
	Enrollments() EnrollmentRepository
	Provisioning() ProvisioningRepository
	PaymentEvents() PaymentEventRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*CourseSnapshot, error)
	DiscountByCode(ctx context.Context, code string) (*DiscountSnapshot, error)
	CartByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	EnrollmentByKey(ctx context.Context, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type CartRepository interface {
	Add(ctx context.Context, tx sqlc.DBTX, item *cart.Item) error
	Remove(ctx context.Context, tx sqlc.DBTX, userID, itemID uuid.UUID) error
	RemoveCourses(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, courseIDs []uuid.UUID) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) error
	Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*order.Order, error)
	GetForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*order.Order, error)
	UpdateState(ctx context.Context, tx sqlc.DBTX, o *order.Order) error
	ExpireStale(ctx context.Context, tx sqlc.DBTX, createdBefore time.Time) (int64, error)
	PaidOrdersWithCourses(ctx context.Context, tx sqlc.DBTX, userID, excludeOrderID uuid.UUID, courseIDs []uuid.UUID) ([]uuid.UUID, error)
}

type EnrollmentRepository interface {
	// GetForUpdate returns (nil, nil) when the student has never been enrolled.
	GetForUpdate(ctx context.Context, tx sqlc.DBTX, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error)
	Upsert(ctx context.Context, tx sqlc.DBTX, e *enrollment.Enrollment) (*enrollment.Enrollment, error)
}

type ProvisioningRepository interface {
	Seed(ctx context.Context, tx sqlc.DBTX, orderID uuid.UUID, courseIDs []uuid.UUID, now time.Time) error
	List(ctx context.Context, tx sqlc.DBTX, orderID uuid.UUID) ([]ProvisioningStep, error)
	Record(ctx context.Context, tx sqlc.DBTX, step ProvisioningStep, now time.Time) error
}

type PaymentEventRepository interface {
	// Record returns false when the payment id was already seen.
	Record(ctx context.Context, tx sqlc.DBTX, paymentID string, orderID uuid.UUID, outcome string, at time.Time) (bool, error)
}

type IdempotencyRepository interface {
	// TryInsert returns false when the key already exists for the user.
	TryInsert(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx sqlc.DBTX, key, userID uuid.UUID, orderID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx sqlc.DBTX) (int64, error)
}

type OutboxRepository interface {
	Insert(ctx context.Context, tx sqlc.DBTX, event OutboxEvent) error
	FetchPending(ctx context.Context, tx sqlc.DBTX, limit int) ([]OutboxMessage, error)
	MarkSent(ctx context.Context, tx sqlc.DBTX, id int64) error
}
