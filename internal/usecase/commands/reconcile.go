package commands

import (
	"context"
	"log/slog"
	"time"

	"learnhub-checkout/internal/pkg/clock"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/metrics"
	"learnhub-checkout/internal/usecase/shared"
)

//go:generate mockgen -source=reconcile.go -destination=../../../tests/mock/commands/reconcile_mock.go -package=commandsmock

type ReconcileCommands interface {
	// ExpireStalePending moves CREATED and PENDING orders older than olderThan to EXPIRED.
	// Carts and enrollments are left untouched.
	ExpireStalePending(ctx context.Context, olderThan time.Duration) (int64, error)
	PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error)
}

type reconcileUseCaseImpl struct {
	uow     shared.UnitOfWork
	metrics *metrics.Pipeline
	clock   clock.Clock
}

func NewReconcileUseCase(uow shared.UnitOfWork, m *metrics.Pipeline, clk clock.Clock) ReconcileCommands {
	return &reconcileUseCaseImpl{uow: uow, metrics: m, clock: clk}
}

func (uc *reconcileUseCaseImpl) ExpireStalePending(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errs.Wrap(errs.ErrDomainValidation, "pending ttl must be positive")
	}
	cutoff := uc.clock.Now().Add(-olderThan)

	var expired int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Orders().ExpireStale(ctx, tx.DB(), cutoff)
		if err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		expired = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.metrics.OrdersExpired(expired)
	if expired > 0 {
		slog.Info("stale orders expired", "count", expired, "cutoff", cutoff)
	}
	return expired, nil
}

func (uc *reconcileUseCaseImpl) PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	var purged int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, tx.DB())
		if err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		purged = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		slog.Debug("expired idempotency keys purged", "count", purged)
	}
	return purged, nil
}
