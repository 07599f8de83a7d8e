package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOutboxEvent = `-- name: InsertOutboxEvent :exec
INSERT INTO outbox_events (event_id, event_type, aggregate_id, payload, created_at)
VALUES ($1, $2, $3, $4, $5)
`

type InsertOutboxEventParams struct {
	EventID     uuid.UUID
	EventType   string
	AggregateID string
	Payload     []byte
	CreatedAt   pgtype.Timestamptz
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, db DBTX, arg InsertOutboxEventParams) error {
	_, err := db.Exec(ctx, insertOutboxEvent,
		arg.EventID,
		arg.EventType,
		arg.AggregateID,
		arg.Payload,
		arg.CreatedAt,
	)
	return err
}

const fetchPendingOutboxEvents = `-- name: FetchPendingOutboxEvents :many
SELECT id, event_id, event_type, aggregate_id, payload, created_at, sent_at
FROM outbox_events
WHERE sent_at IS NULL
ORDER BY id
LIMIT $1
FOR UPDATE SKIP LOCKED
`

func (q *Queries) FetchPendingOutboxEvents(ctx context.Context, db DBTX, limit int32) ([]OutboxEvents, error) {
	rows, err := db.Query(ctx, fetchPendingOutboxEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OutboxEvents{}
	for rows.Next() {
		var i OutboxEvents
		if err := rows.Scan(
			&i.ID,
			&i.EventID,
			&i.EventType,
			&i.AggregateID,
			&i.Payload,
			&i.CreatedAt,
			&i.SentAt,
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

const markOutboxEventSent = `-- name: MarkOutboxEventSent :exec
UPDATE outbox_events
SET sent_at = now()
WHERE id = $1
`

func (q *Queries) MarkOutboxEventSent(ctx context.Context, db DBTX, id int64) error {
	_, err := db.Exec(ctx, markOutboxEventSent, id)
	return err
}
