package readstore

import (
	"context"

	"learnhub-checkout/internal/domain/cart"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type CartReadQueries interface {
	ListCartItemsByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) ([]sqlc.CartItems, error)
}

type CartReadStore struct {
	queries CartReadQueries
	db      sqlc.DBTX
}

func NewCartReadStore(queries CartReadQueries, db sqlc.DBTX) *CartReadStore {
	return &CartReadStore{
		queries: queries,
		db:      db,
	}
}

// FindByUser returns the durable cart; a user without rows gets an empty cart.
func (r *CartReadStore) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	rows, err := r.queries.ListCartItemsByUser(ctx, r.db, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cart items", err)
	}

	items := make([]*cart.Item, len(rows))
	for i, row := range rows {
		items[i] = cart.ReconstructItem(row.ID, row.UserID, row.CourseID, row.CourseName, row.CoursePriceMinor, pgconv.TimeFromPgtype(row.CreatedAt))
	}
	return cart.NewCart(userID, items), nil
}

func (r *CartReadStore) ViewByUser(ctx context.Context, userID uuid.UUID) (*queries.CartView, error) {
	c, err := r.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return CartToView(c), nil
}

func CartToView(c *cart.Cart) *queries.CartView {
	view := &queries.CartView{
		UserID:     c.UserID(),
		Items:      make([]queries.CartItemView, len(c.Items())),
		TotalMinor: c.Total().Int64(),
	}
	for i, it := range c.Items() {
		view.Items[i] = queries.CartItemView{
			ID:         it.ID(),
			CourseID:   it.CourseID(),
			CourseName: it.CourseName(),
			PriceMinor: it.Price().Int64(),
			AddedAt:    it.AddedAt(),
		}
	}
	return view
}
