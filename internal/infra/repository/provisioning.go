package repository

import (
	"context"
	"time"

	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProvisioningQueries interface {
	SeedOrderProvisioning(ctx context.Context, db sqlc.DBTX, arg sqlc.SeedOrderProvisioningParams) error
	ListOrderProvisioning(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.OrderProvisioning, error)
	UpdateOrderProvisioning(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderProvisioningParams) error
}

// ProvisioningRepository persists the per-course saga log of an order.
type ProvisioningRepository struct {
	queries ProvisioningQueries
	db      sqlc.DBTX
}

func NewProvisioningRepository(queries ProvisioningQueries, db sqlc.DBTX) *ProvisioningRepository {
	return &ProvisioningRepository{
		queries: queries,
		db:      db,
	}
}

// Seed is idempotent; existing rows keep their state.
func (r *ProvisioningRepository) Seed(ctx context.Context, tx sqlc.DBTX, orderID uuid.UUID, courseIDs []uuid.UUID, now time.Time) error {
	for _, courseID := range courseIDs {
		err := r.queries.SeedOrderProvisioning(ctx, tx, sqlc.SeedOrderProvisioningParams{
			OrderID:   orderID,
			CourseID:  courseID,
			UpdatedAt: pgconv.TimeToPgtype(now),
		})
		if err != nil {
			return infra.WrapRepoErr("failed to seed provisioning", err)
		}
	}
	return nil
}

func (r *ProvisioningRepository) List(ctx context.Context, tx sqlc.DBTX, orderID uuid.UUID) ([]shared.ProvisioningStep, error) {
	rows, err := r.queries.ListOrderProvisioning(ctx, tx, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list provisioning", err)
	}

	steps := make([]shared.ProvisioningStep, 0, len(rows))
	for _, row := range rows {
		outcome, err := enrollment.ParseOutcome(row.Status)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid provisioning status", err, infra.KindDBFailure)
		}
		steps = append(steps, shared.ProvisioningStep{
			OrderID:   row.OrderID,
			CourseID:  row.CourseID,
			Outcome:   outcome,
			Attempts:  int(row.Attempts),
			ExpiresAt: pgconv.TimePtrFromPgtype(row.ExpiresAt),
			LastError: pgconv.StringFromPgtype(row.LastError),
		})
	}
	return steps, nil
}

func (r *ProvisioningRepository) Record(ctx context.Context, tx sqlc.DBTX, step shared.ProvisioningStep, now time.Time) error {
	err := r.queries.UpdateOrderProvisioning(ctx, tx, sqlc.UpdateOrderProvisioningParams{
		OrderID:   step.OrderID,
		CourseID:  step.CourseID,
		Status:    step.Outcome.String(),
		ExpiresAt: pgconv.TimePtrToPgtype(step.ExpiresAt),
		LastError: pgconv.OptionalText(step.LastError),
		UpdatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to record provisioning outcome", err)
	}
	return nil
}
