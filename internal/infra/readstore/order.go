package readstore

import (
	"context"
	"time"

	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderViewQueries interface {
	GetOrder(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	ListOrderItems(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.OrderItems, error)
	ListOrderProvisioning(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.OrderProvisioning, error)
	ListOrdersByUserFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByUserFirstPageParams) ([]sqlc.Orders, error)
	ListOrdersByUserKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByUserKeysetParams) ([]sqlc.Orders, error)
}

type OrderReadStore struct {
	queries OrderViewQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderViewQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row, err := r.queries.GetOrder(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	items, err := r.queries.ListOrderItems(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}

	steps, err := r.queries.ListOrderProvisioning(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order provisioning", err)
	}

	return rowToOrderView(row, items, steps), nil
}

func rowToOrderView(row sqlc.Orders, items []sqlc.OrderItems, steps []sqlc.OrderProvisioning) *queries.OrderView {
	view := &queries.OrderView{
		ID:            row.ID,
		UserID:        row.UserID,
		Status:        row.Status,
		PaymentMode:   row.PaymentMode,
		SubtotalMinor: row.SubtotalMinor,
		DiscountMinor: row.DiscountMinor,
		AmountMinor:   row.AmountMinor,
		Currency:      row.Currency,
		DiscountCode:  pgconv.StringPtrFromPgtype(row.DiscountCode),
		FailureReason: pgconv.StringPtrFromPgtype(row.FailureReason),
		Items:         make([]queries.OrderItemView, len(items)),
		Provisioning:  make([]queries.ProvisioningView, len(steps)),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		VerifiedAt:    pgconv.TimePtrFromPgtype(row.VerifiedAt),
		CompletedAt:   pgconv.TimePtrFromPgtype(row.CompletedAt),
	}
	for i, it := range items {
		view.Items[i] = queries.OrderItemView{
			CourseID:   it.CourseID,
			CourseName: it.CourseName,
			PriceMinor: it.PriceMinor,
		}
	}
	for i, st := range steps {
		view.Provisioning[i] = queries.ProvisioningView{
			CourseID:  st.CourseID,
			Status:    st.Status,
			Attempts:  st.Attempts,
			ExpiresAt: pgconv.TimePtrFromPgtype(st.ExpiresAt),
			LastError: pgconv.StringPtrFromPgtype(st.LastError),
		}
	}
	return view
}

func (r *OrderReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	params := sqlc.ListOrdersByUserFirstPageParams{
		UserID: userID,
		Limit:  limit,
	}

	rows, err := r.queries.ListOrdersByUserFirstPage(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find orders first page", err)
	}

	return toOrderListItems(rows), nil
}

func (r *OrderReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	params := sqlc.ListOrdersByUserKeysetParams{
		UserID:    userID,
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		Limit:     limit,
	}

	rows, err := r.queries.ListOrdersByUserKeyset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find orders with keyset", err)
	}

	return toOrderListItems(rows), nil
}

func toOrderListItems(rows []sqlc.Orders) []*queries.OrderListItem {
	result := make([]*queries.OrderListItem, len(rows))
	for i, row := range rows {
		result[i] = &queries.OrderListItem{
			ID:          row.ID,
			Status:      row.Status,
			PaymentMode: row.PaymentMode,
			AmountMinor: row.AmountMinor,
			Currency:    row.Currency,
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
			CompletedAt: pgconv.TimePtrFromPgtype(row.CompletedAt),
		}
	}
	return result
}
