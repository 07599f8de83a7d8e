package queries

import (
	"context"
	"time"

	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/order_mock.go -package=queriesmock

type OrderViewStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*OrderListItem, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*OrderListItem, error)
}

type OrderQueries interface {
	Get(ctx context.Context, session shared.Session, id uuid.UUID) (*OrderView, error)
	// List returns the caller's orders newest first; the returned cursor is nil on the last page.
	List(ctx context.Context, session shared.Session, after *Cursor, limit int) ([]*OrderListItem, *Cursor, error)
}

type orderQueriesImpl struct {
	store OrderViewStore
}

func NewOrderQueries(store OrderViewStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) Get(ctx context.Context, session shared.Session, id uuid.UUID) (*OrderView, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrOrderNotFound, "order %s", id)
		}
		return nil, errs.Mark(err, errs.ErrPersistenceFailure)
	}
	// Another user's order is indistinguishable from a missing one.
	if view.UserID != session.UserID {
		return nil, errs.Wrapf(errs.ErrOrderNotFound, "order %s", id)
	}
	return view, nil
}

func (q *orderQueriesImpl) List(ctx context.Context, session shared.Session, after *Cursor, limit int) ([]*OrderListItem, *Cursor, error) {
	if !session.Valid() {
		return nil, nil, errs.ErrUnauthenticated
	}
	limit = ValidateLimit(limit)
	// One extra row tells whether another page exists.
	fetch := int32(limit + 1) // #nosec G115 -- bounded by MaxListLimit

	var (
		items []*OrderListItem
		err   error
	)
	if after == nil || after.After == "" {
		items, err = q.store.FindByUserFirstPage(ctx, session.UserID, fetch)
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(after.After)
		if derr != nil {
			return nil, nil, derr
		}
		items, err = q.store.FindByUserKeyset(ctx, session.UserID, lastCreatedAt, lastID, fetch)
	}
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrPersistenceFailure)
	}

	if len(items) <= limit {
		return items, nil, nil
	}
	items = items[:limit]
	last := items[len(items)-1]
	return items, &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}, nil
}
