package repository

import (
	"context"

	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type OutboxQueries interface {
	InsertOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOutboxEventParams) error
	FetchPendingOutboxEvents(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.OutboxEvents, error)
	MarkOutboxEventSent(ctx context.Context, db sqlc.DBTX, id int64) error
}

type OutboxRepository struct {
	queries OutboxQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Insert(ctx context.Context, tx sqlc.DBTX, event shared.OutboxEvent) error {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	params := sqlc.InsertOutboxEventParams{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     event.Payload,
		CreatedAt:   pgconv.TimeToPgtype(event.CreatedAt),
	}

	if err := r.queries.InsertOutboxEvent(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to insert outbox event", err)
	}

	return nil
}

// FetchPending skips rows locked by another poller; call it inside a transaction.
func (r *OutboxRepository) FetchPending(ctx context.Context, tx sqlc.DBTX, limit int) ([]shared.OutboxMessage, error) {
	rows, err := r.queries.FetchPendingOutboxEvents(ctx, tx, int32(limit)) // #nosec G115 -- batch size is config-bounded
	if err != nil {
		return nil, infra.WrapRepoErr("failed to fetch outbox events", err)
	}

	msgs := make([]shared.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, shared.OutboxMessage{
			ID: row.ID,
			OutboxEvent: shared.OutboxEvent{
				EventID:     row.EventID,
				EventType:   row.EventType,
				AggregateID: row.AggregateID,
				Payload:     row.Payload,
				CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
			},
		})
	}
	return msgs, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, tx sqlc.DBTX, id int64) error {
	if err := r.queries.MarkOutboxEventSent(ctx, tx, id); err != nil {
		return infra.WrapRepoErr("failed to mark outbox event sent", err)
	}
	return nil
}
