package commands

import (
	"context"
	"strings"

	"learnhub-checkout/internal/domain/discount"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/money"
	"learnhub-checkout/internal/usecase/shared"
)

//go:generate mockgen -source=discount.go -destination=../../../tests/mock/commands/discount_mock.go -package=commandsmock

type DiscountPreview struct {
	Code          string
	SubtotalMinor int64
	DiscountMinor int64
	TotalMinor    int64
}

type DiscountEngine interface {
	// Apply returns discount.None for an empty code.
	Apply(ctx context.Context, code string, subtotal money.Minor) (discount.Applied, error)
	Preview(ctx context.Context, session shared.Session, code string) (*DiscountPreview, error)
}

type discountEngineImpl struct {
	uow shared.UnitOfWork
}

func NewDiscountEngine(uow shared.UnitOfWork) DiscountEngine {
	return &discountEngineImpl{uow: uow}
}

func (e *discountEngineImpl) Apply(ctx context.Context, code string, subtotal money.Minor) (discount.Applied, error) {
	return applyDiscount(ctx, e.uow.CommandReads(), code, subtotal)
}

func (e *discountEngineImpl) Preview(ctx context.Context, session shared.Session, code string) (*DiscountPreview, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}
	reads := e.uow.CommandReads()

	current, err := reads.CartByUser(ctx, session.UserID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPersistenceFailure)
	}
	if current.IsEmpty() {
		return nil, errs.ErrEmptyCart
	}
	subtotal := current.Total()

	applied, err := applyDiscount(ctx, reads, code, subtotal)
	if err != nil {
		return nil, err
	}
	return &DiscountPreview{
		Code:          applied.Code.String(),
		SubtotalMinor: subtotal.Int64(),
		DiscountMinor: applied.Amount.Int64(),
		TotalMinor:    subtotal.Sub(applied.Amount).Int64(),
	}, nil
}

func applyDiscount(ctx context.Context, reads shared.CommandReads, code string, subtotal money.Minor) (discount.Applied, error) {
	if strings.TrimSpace(code) == "" {
		return discount.None, nil
	}
	normalized, err := discount.NewCode(code)
	if err != nil {
		return discount.Applied{}, errs.Mark(err, errs.ErrInvalidDiscountCode)
	}

	snap, err := reads.DiscountByCode(ctx, normalized.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return discount.Applied{}, errs.Wrapf(errs.ErrInvalidDiscountCode, "code %s", normalized)
		}
		return discount.Applied{}, errs.Mark(err, errs.ErrPersistenceFailure)
	}

	rule, err := discount.NewRule(snap.DiscountPercent, snap.DiscountAmountMinor)
	if err != nil {
		return discount.Applied{}, errs.Mark(err, errs.ErrInvalidDiscountCode)
	}
	dc, err := discount.NewDiscountCode(snap.Code, rule, snap.IsActive)
	if err != nil {
		return discount.Applied{}, errs.Mark(err, errs.ErrInvalidDiscountCode)
	}
	return dc.Apply(subtotal)
}
