package readstore

import (
	"context"

	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type CourseReadQueries interface {
	GetCourse(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Courses, error)
}

type CourseReadStore struct {
	queries CourseReadQueries
	db      sqlc.DBTX
}

func NewCourseReadStore(queries CourseReadQueries, db sqlc.DBTX) *CourseReadStore {
	return &CourseReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CourseReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.CourseSnapshot, error) {
	row, err := r.queries.GetCourse(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("course not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find course by ID", err)
	}

	return &shared.CourseSnapshot{
		ID:          row.ID,
		Title:       row.Title,
		PriceMinor:  row.PriceMinor,
		IsPublished: row.IsPublished,
	}, nil
}
