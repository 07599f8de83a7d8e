package queries

import (
	"context"

	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/queries/cart_mock.go -package=queriesmock

type CartViewStore interface {
	ViewByUser(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

// CartViewCache serves a cached view or fills it from load. Cache faults fall
// back to load; a fill racing a cart write must not survive the write.
type CartViewCache interface {
	GetOrLoad(ctx context.Context, userID uuid.UUID, load func(ctx context.Context) (*CartView, error)) (*CartView, error)
}

type CartQueries interface {
	Get(ctx context.Context, session shared.Session) (*CartView, error)
	List(ctx context.Context, session shared.Session) ([]CartItemView, error)
	// Total is the sum of current row snapshots, not an order amount.
	Total(ctx context.Context, session shared.Session) (int64, error)
}

type cartQueriesImpl struct {
	store CartViewStore
	cache CartViewCache
}

func NewCartQueries(store CartViewStore, cache CartViewCache) CartQueries {
	return &cartQueriesImpl{store: store, cache: cache}
}

func (q *cartQueriesImpl) Get(ctx context.Context, session shared.Session) (*CartView, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}
	userID := session.UserID

	var (
		view *CartView
		err  error
	)
	if q.cache != nil {
		view, err = q.cache.GetOrLoad(ctx, userID, func(ctx context.Context) (*CartView, error) {
			return q.store.ViewByUser(ctx, userID)
		})
	} else {
		view, err = q.store.ViewByUser(ctx, userID)
	}
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPersistenceFailure)
	}
	return view, nil
}

func (q *cartQueriesImpl) List(ctx context.Context, session shared.Session) ([]CartItemView, error) {
	view, err := q.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	return view.Items, nil
}

func (q *cartQueriesImpl) Total(ctx context.Context, session shared.Session) (int64, error) {
	view, err := q.Get(ctx, session)
	if err != nil {
		return 0, err
	}
	return view.TotalMinor, nil
}
