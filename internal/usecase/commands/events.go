package commands

import (
	"context"
	"encoding/json"
	"time"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type orderEventPayload struct {
	OrderID       uuid.UUID   `json:"order_id"`
	UserID        uuid.UUID   `json:"user_id"`
	Status        string      `json:"status"`
	PaymentMode   string      `json:"payment_mode"`
	AmountMinor   int64       `json:"amount_minor"`
	Currency      string      `json:"currency"`
	CourseIDs     []uuid.UUID `json:"course_ids"`
	PaymentID     string      `json:"payment_id,omitempty"`
	FailureReason string      `json:"failure_reason,omitempty"`
	DuplicateOf   []uuid.UUID `json:"duplicate_of,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

func newOrderEventPayload(o *order.Order, now time.Time) orderEventPayload {
	return orderEventPayload{
		OrderID:       o.ID(),
		UserID:        o.UserID(),
		Status:        o.Status().String(),
		PaymentMode:   o.PaymentMode().String(),
		AmountMinor:   o.Amount().Int64(),
		Currency:      o.Currency(),
		CourseIDs:     o.CourseIDs(),
		PaymentID:     o.PaymentID(),
		FailureReason: string(o.FailureReason()),
		OccurredAt:    now,
	}
}

func writeOrderEvent(ctx context.Context, tx shared.Tx, eventType string, payload orderEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode outbox payload")
	}
	event := shared.OutboxEvent{
		EventID:     uuid.New(),
		EventType:   eventType,
		AggregateID: payload.OrderID.String(),
		Payload:     body,
		CreatedAt:   payload.OccurredAt,
	}
	if err := tx.Outbox().Insert(ctx, tx.DB(), event); err != nil {
		return errs.Mark(err, errs.ErrPersistenceFailure)
	}
	return nil
}
