package commands

import (
	"context"
	"log/slog"

	"learnhub-checkout/internal/domain/cart"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/pkg/clock"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/queries"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=cart.go -destination=../../../tests/mock/commands/cart_mock.go -package=commandsmock

type CartCommands interface {
	Add(ctx context.Context, session shared.Session, courseID uuid.UUID) (*queries.CartItemView, error)
	Remove(ctx context.Context, session shared.Session, itemID uuid.UUID) error
}

type cartUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache CartCacheInvalidator
	clock clock.Clock
}

func NewCartUseCase(uow shared.UnitOfWork, cache CartCacheInvalidator, clk clock.Clock) CartCommands {
	return &cartUseCaseImpl{uow: uow, cache: cache, clock: clk}
}

func (uc *cartUseCaseImpl) Add(ctx context.Context, session shared.Session, courseID uuid.UUID) (*queries.CartItemView, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}
	now := uc.clock.Now()

	var added *cart.Item
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		added = nil

		course, err := tx.Reads().CourseByID(ctx, courseID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(errs.ErrCourseNotFound, "course %s", courseID)
			}
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if !course.IsPublished {
			return errs.Wrapf(errs.ErrCourseNotFound, "course %s is not published", courseID)
		}

		enr, err := tx.Reads().EnrollmentByKey(ctx, session.UserID, courseID)
		switch {
		case err == nil:
			if enr.HasAccess(now) {
				return errs.ErrAlreadyEnrolled
			}
		case !infra.IsKind(err, infra.KindNotFound):
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}

		current, err := tx.Reads().CartByUser(ctx, session.UserID)
		if err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if err := current.CanAdd(courseID); err != nil {
			return err
		}

		item, err := cart.NewItem(session.UserID, courseID, course.Title, course.PriceMinor, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if err := tx.Carts().Add(ctx, tx.DB(), item); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrCourseAlreadyInCart
			}
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		added = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, session.UserID)
	slog.Info("course added to cart", "user_id", session.UserID, "course_id", courseID)

	return &queries.CartItemView{
		ID:         added.ID(),
		CourseID:   added.CourseID(),
		CourseName: added.CourseName(),
		PriceMinor: added.Price().Int64(),
		AddedAt:    added.AddedAt(),
	}, nil
}

func (uc *cartUseCaseImpl) Remove(ctx context.Context, session shared.Session, itemID uuid.UUID) error {
	if !session.Valid() {
		return errs.ErrUnauthenticated
	}
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Carts().Remove(ctx, tx.DB(), session.UserID, itemID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(errs.ErrCartItemNotFound, "item %s", itemID)
			}
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx, session.UserID)
	return nil
}

// A failed invalidation leaves the cached view until its TTL; it never fails the write.
func (uc *cartUseCaseImpl) invalidate(ctx context.Context, userID uuid.UUID) {
	invalidateCart(ctx, uc.cache, userID)
}

func invalidateCart(ctx context.Context, cache CartCacheInvalidator, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("cart cache invalidation failed", "user_id", userID, "error", err)
	}
}
