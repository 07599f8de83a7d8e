package repository

import (
	"context"

	"learnhub-checkout/internal/domain/cart"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CartWriteQueries interface {
	CreateCartItem(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCartItemParams) (sqlc.CartItems, error)
	DeleteCartItem(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteCartItemParams) (int64, error)
	DeleteCartItemsByCourses(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteCartItemsByCoursesParams) (int64, error)
}

type CartRepository struct {
	queries CartWriteQueries
	db      sqlc.DBTX
}

func NewCartRepository(queries CartWriteQueries, db sqlc.DBTX) *CartRepository {
	return &CartRepository{
		queries: queries,
		db:      db,
	}
}

func (r *CartRepository) Add(ctx context.Context, tx sqlc.DBTX, item *cart.Item) error {
	params := sqlc.CreateCartItemParams{
		ID:               item.ID(),
		UserID:           item.UserID(),
		CourseID:         item.CourseID(),
		CourseName:       item.CourseName(),
		CoursePriceMinor: item.Price().Int64(),
		CreatedAt:        pgconv.TimeToPgtype(item.AddedAt()),
	}
	if _, err := r.queries.CreateCartItem(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to add cart item", err)
	}
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, tx sqlc.DBTX, userID, itemID uuid.UUID) error {
	n, err := r.queries.DeleteCartItem(ctx, tx, sqlc.DeleteCartItemParams{ID: itemID, UserID: userID})
	if err != nil {
		return infra.WrapRepoErr("failed to remove cart item", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CartRepository) RemoveCourses(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, courseIDs []uuid.UUID) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	n, err := r.queries.DeleteCartItemsByCourses(ctx, tx, sqlc.DeleteCartItemsByCoursesParams{
		UserID:    userID,
		CourseIds: courseIDs,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to clear purchased cart items", err)
	}
	return n, nil
}
