package readstore

import (
	"context"
	"strings"

	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"
	"learnhub-checkout/internal/usecase/shared"
)

type DiscountReadQueries interface {
	GetDiscountCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.DiscountCodes, error)
}

type DiscountReadStore struct {
	queries DiscountReadQueries
	db      sqlc.DBTX
}

func NewDiscountReadStore(queries DiscountReadQueries, db sqlc.DBTX) *DiscountReadStore {
	return &DiscountReadStore{
		queries: queries,
		db:      db,
	}
}

// FindByCode looks the code up exactly as stored (upper case).
func (r *DiscountReadStore) FindByCode(ctx context.Context, code string) (*shared.DiscountSnapshot, error) {
	normalizedCode := strings.ToUpper(strings.TrimSpace(code))
	row, err := r.queries.GetDiscountCode(ctx, r.db, normalizedCode)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("discount code not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find discount code", err)
	}

	percent, err := pgconv.DecimalPtrFromNumeric(row.DiscountPercent)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid discount percent", err, infra.KindDBFailure)
	}

	return &shared.DiscountSnapshot{
		Code:                row.Code,
		DiscountPercent:     percent,
		DiscountAmountMinor: pgconv.Int64PtrFromPgtype(row.DiscountAmountMinor),
		IsActive:            row.IsActive,
	}, nil
}
