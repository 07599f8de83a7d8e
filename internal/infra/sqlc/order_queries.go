package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, user_id, subtotal_minor, discount_minor, amount_minor, currency, discount_code,
       status, payment_mode, gateway_session_id, payment_id, failure_reason,
       customer_name, customer_email, customer_contact,
       created_at, updated_at, verified_at, completed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Orders, error) {
	var i Orders
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.SubtotalMinor,
		&i.DiscountMinor,
		&i.AmountMinor,
		&i.Currency,
		&i.DiscountCode,
		&i.Status,
		&i.PaymentMode,
		&i.GatewaySessionID,
		&i.PaymentID,
		&i.FailureReason,
		&i.CustomerName,
		&i.CustomerEmail,
		&i.CustomerContact,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.VerifiedAt,
		&i.CompletedAt,
	)
	return i, err
}

const createOrder = `-- name: CreateOrder :exec
INSERT INTO orders (
    id, user_id, subtotal_minor, discount_minor, amount_minor, currency, discount_code,
    status, payment_mode, customer_name, customer_email, customer_contact, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
`

type CreateOrderParams struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	SubtotalMinor   int64
	DiscountMinor   int64
	AmountMinor     int64
	Currency        string
	DiscountCode    pgtype.Text
	Status          string
	PaymentMode     string
	CustomerName    string
	CustomerEmail   string
	CustomerContact string
	CreatedAt       pgtype.Timestamptz
}

func (q *Queries) CreateOrder(ctx context.Context, db DBTX, arg CreateOrderParams) error {
	_, err := db.Exec(ctx, createOrder,
		arg.ID,
		arg.UserID,
		arg.SubtotalMinor,
		arg.DiscountMinor,
		arg.AmountMinor,
		arg.Currency,
		arg.DiscountCode,
		arg.Status,
		arg.PaymentMode,
		arg.CustomerName,
		arg.CustomerEmail,
		arg.CustomerContact,
		arg.CreatedAt,
	)
	return err
}

const createOrderItem = `-- name: CreateOrderItem :exec
INSERT INTO order_items (order_id, course_id, course_name, price_minor, position)
VALUES ($1, $2, $3, $4, $5)
`

type CreateOrderItemParams struct {
	OrderID    uuid.UUID
	CourseID   uuid.UUID
	CourseName string
	PriceMinor int64
	Position   int32
}

func (q *Queries) CreateOrderItem(ctx context.Context, db DBTX, arg CreateOrderItemParams) error {
	_, err := db.Exec(ctx, createOrderItem,
		arg.OrderID,
		arg.CourseID,
		arg.CourseName,
		arg.PriceMinor,
		arg.Position,
	)
	return err
}

const getOrder = `-- name: GetOrder :one
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, db DBTX, id uuid.UUID) (Orders, error) {
	return scanOrder(db.QueryRow(ctx, getOrder, id))
}

const getOrderForUpdate = `-- name: GetOrderForUpdate :one
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetOrderForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Orders, error) {
	return scanOrder(db.QueryRow(ctx, getOrderForUpdate, id))
}

const listOrdersByUserFirstPage = `-- name: ListOrdersByUserFirstPage :many
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

type ListOrdersByUserFirstPageParams struct {
	UserID uuid.UUID
	Limit  int32
}

func (q *Queries) ListOrdersByUserFirstPage(ctx context.Context, db DBTX, arg ListOrdersByUserFirstPageParams) ([]Orders, error) {
	rows, err := db.Query(ctx, listOrdersByUserFirstPage, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

const listOrdersByUserKeyset = `-- name: ListOrdersByUserKeyset :many
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
  AND (created_at, id) < ($2, $3)
ORDER BY created_at DESC, id DESC
LIMIT $4
`

type ListOrdersByUserKeysetParams struct {
	UserID    uuid.UUID
	CreatedAt pgtype.Timestamptz
	ID        uuid.UUID
	Limit     int32
}

func (q *Queries) ListOrdersByUserKeyset(ctx context.Context, db DBTX, arg ListOrdersByUserKeysetParams) ([]Orders, error) {
	rows, err := db.Query(ctx, listOrdersByUserKeyset, arg.UserID, arg.CreatedAt, arg.ID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]Orders, error) {
	defer rows.Close()
	items := []Orders{}
	for rows.Next() {
		i, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOrderItems = `-- name: ListOrderItems :many
SELECT order_id, course_id, course_name, price_minor, position
FROM order_items
WHERE order_id = $1
ORDER BY position
`

func (q *Queries) ListOrderItems(ctx context.Context, db DBTX, orderID uuid.UUID) ([]OrderItems, error) {
	rows, err := db.Query(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderItems{}
	for rows.Next() {
		var i OrderItems
		if err := rows.Scan(
			&i.OrderID,
			&i.CourseID,
			&i.CourseName,
			&i.PriceMinor,
			&i.Position,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateOrderState = `-- name: UpdateOrderState :execrows
UPDATE orders
SET status             = $2,
    gateway_session_id = $3,
    payment_id         = $4,
    failure_reason     = $5,
    verified_at        = $6,
    completed_at       = $7,
    updated_at         = $8
WHERE id = $1
`

type UpdateOrderStateParams struct {
	ID               uuid.UUID
	Status           string
	GatewaySessionID pgtype.Text
	PaymentID        pgtype.Text
	FailureReason    pgtype.Text
	VerifiedAt       pgtype.Timestamptz
	CompletedAt      pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

func (q *Queries) UpdateOrderState(ctx context.Context, db DBTX, arg UpdateOrderStateParams) (int64, error) {
	result, err := db.Exec(ctx, updateOrderState,
		arg.ID,
		arg.Status,
		arg.GatewaySessionID,
		arg.PaymentID,
		arg.FailureReason,
		arg.VerifiedAt,
		arg.CompletedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const expireStaleOrders = `-- name: ExpireStaleOrders :execrows
UPDATE orders
SET status     = 'EXPIRED',
    updated_at = now()
WHERE status IN ('CREATED', 'PENDING')
  AND created_at < $1
`

func (q *Queries) ExpireStaleOrders(ctx context.Context, db DBTX, createdBefore pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, expireStaleOrders, createdBefore)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listPaidOrdersWithCourses = `-- name: ListPaidOrdersWithCourses :many
SELECT DISTINCT o.id
FROM orders o
JOIN order_items oi ON oi.order_id = o.id
WHERE o.user_id = $1
  AND o.id <> $2
  AND o.status IN ('VERIFIED', 'PROVISIONED')
  AND oi.course_id = ANY($3::uuid[])
`

type ListPaidOrdersWithCoursesParams struct {
	UserID    uuid.UUID
	ExcludeID uuid.UUID
	CourseIds []uuid.UUID
}

func (q *Queries) ListPaidOrdersWithCourses(ctx context.Context, db DBTX, arg ListPaidOrdersWithCoursesParams) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listPaidOrdersWithCourses, arg.UserID, arg.ExcludeID, arg.CourseIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertPaymentEvent = `-- name: InsertPaymentEvent :execrows
INSERT INTO payment_events (payment_id, order_id, outcome, received_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (payment_id) DO NOTHING
`

type InsertPaymentEventParams struct {
	PaymentID  string
	OrderID    uuid.UUID
	Outcome    string
	ReceivedAt pgtype.Timestamptz
}

func (q *Queries) InsertPaymentEvent(ctx context.Context, db DBTX, arg InsertPaymentEventParams) (int64, error) {
	result, err := db.Exec(ctx, insertPaymentEvent, arg.PaymentID, arg.OrderID, arg.Outcome, arg.ReceivedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
