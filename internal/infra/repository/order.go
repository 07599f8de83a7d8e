package repository

import (
	"context"
	"time"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/repository/converter"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error
	CreateOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderItemParams) error
	GetOrder(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	GetOrderForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	ListOrderItems(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.OrderItems, error)
	UpdateOrderState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStateParams) (int64, error)
	ExpireStaleOrders(ctx context.Context, db sqlc.DBTX, createdBefore pgtype.Timestamptz) (int64, error)
	ListPaidOrdersWithCourses(ctx context.Context, db sqlc.DBTX, arg sqlc.ListPaidOrdersWithCoursesParams) ([]uuid.UUID, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
	db      sqlc.DBTX
}

func NewOrderRepository(queries OrderWriteQueries, db sqlc.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

// Create writes the order row and its frozen item snapshot.
func (r *OrderRepository) Create(ctx context.Context, tx sqlc.DBTX, o *order.Order) error {
	if err := r.queries.CreateOrder(ctx, tx, converter.OrderToCreateParams(o)); err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	for _, p := range converter.OrderItemsToParams(o) {
		if err := r.queries.CreateOrderItem(ctx, tx, p); err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrder(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get order", err)
	}
	return r.hydrate(ctx, tx, row)
}

// GetForUpdate locks the order row until the surrounding transaction ends.
func (r *OrderRepository) GetForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrderForUpdate(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock order", err)
	}
	return r.hydrate(ctx, tx, row)
}

func (r *OrderRepository) hydrate(ctx context.Context, tx sqlc.DBTX, row sqlc.Orders) (*order.Order, error) {
	items, err := r.queries.ListOrderItems(ctx, tx, row.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	o, err := converter.OrderFromRows(row, items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order", err, infra.KindDBFailure)
	}
	return o, nil
}

func (r *OrderRepository) UpdateState(ctx context.Context, tx sqlc.DBTX, o *order.Order) error {
	n, err := r.queries.UpdateOrderState(ctx, tx, converter.OrderToStateParams(o))
	if err != nil {
		return infra.WrapRepoErr("failed to update order", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OrderRepository) ExpireStale(ctx context.Context, tx sqlc.DBTX, createdBefore time.Time) (int64, error) {
	n, err := r.queries.ExpireStaleOrders(ctx, tx, pgconv.TimeToPgtype(createdBefore))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire stale orders", err)
	}
	return n, nil
}

func (r *OrderRepository) PaidOrdersWithCourses(ctx context.Context, tx sqlc.DBTX, userID, excludeOrderID uuid.UUID, courseIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids, err := r.queries.ListPaidOrdersWithCourses(ctx, tx, sqlc.ListPaidOrdersWithCoursesParams{
		UserID:    userID,
		ExcludeID: excludeOrderID,
		CourseIds: courseIDs,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping orders", err)
	}
	return ids, nil
}
