package commands

import (
	"context"
	"log/slog"

	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/metrics"
	"learnhub-checkout/internal/usecase/shared"
)

//go:generate mockgen -source=outbox.go -destination=../../../tests/mock/commands/outbox_mock.go -package=commandsmock

type OutboxCommands interface {
	// RelayPending publishes up to limit unsent events in insertion order and returns how many were sent.
	RelayPending(ctx context.Context, limit int) (int, error)
}

type outboxRelayImpl struct {
	uow       shared.UnitOfWork
	publisher EventPublisher
	metrics   *metrics.Pipeline
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher EventPublisher, m *metrics.Pipeline) OutboxCommands {
	return &outboxRelayImpl{uow: uow, publisher: publisher, metrics: m}
}

// Delivery is at-least-once: a message published before a failed commit is sent again.
func (r *outboxRelayImpl) RelayPending(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}

	var sent int
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0

		pending, err := tx.Outbox().FetchPending(ctx, tx.DB(), limit)
		if err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		for _, msg := range pending {
			if err := r.publisher.Publish(ctx, msg); err != nil {
				r.metrics.OutboxPublished("error")
				slog.Warn("outbox publish failed",
					"event_id", msg.EventID,
					"event_type", msg.EventType,
					"aggregate_id", msg.AggregateID,
					"error", err,
				)
				// Keep what was sent so far; the rest waits for the next poll.
				return nil
			}
			if err := tx.Outbox().MarkSent(ctx, tx.DB(), msg.ID); err != nil {
				return errs.Mark(err, errs.ErrPersistenceFailure)
			}
			r.metrics.OutboxPublished("sent")
			sent++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sent, nil
}
