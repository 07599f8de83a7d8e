package repository

import (
	"context"
	"time"

	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentEventQueries interface {
	InsertPaymentEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertPaymentEventParams) (int64, error)
}

type PaymentEventRepository struct {
	queries PaymentEventQueries
}

func NewPaymentEventRepository(queries PaymentEventQueries) *PaymentEventRepository {
	return &PaymentEventRepository{queries: queries}
}

func (r *PaymentEventRepository) Record(ctx context.Context, tx sqlc.DBTX, paymentID string, orderID uuid.UUID, outcome string, at time.Time) (bool, error) {
	n, err := r.queries.InsertPaymentEvent(ctx, tx, sqlc.InsertPaymentEventParams{
		PaymentID:  paymentID,
		OrderID:    orderID,
		Outcome:    outcome,
		ReceivedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to record payment event", err)
	}
	return n == 1, nil
}
