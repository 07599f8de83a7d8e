package readstore

import (
	"context"

	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/repository/converter"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type EnrollmentReadQueries interface {
	GetEnrollment(ctx context.Context, db sqlc.DBTX, arg sqlc.GetEnrollmentParams) (sqlc.Enrollments, error)
	ListEnrollmentsByStudent(ctx context.Context, db sqlc.DBTX, studentID uuid.UUID) ([]sqlc.ListEnrollmentsByStudentRow, error)
}

type EnrollmentReadStore struct {
	queries EnrollmentReadQueries
	db      sqlc.DBTX
}

func NewEnrollmentReadStore(queries EnrollmentReadQueries, db sqlc.DBTX) *EnrollmentReadStore {
	return &EnrollmentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *EnrollmentReadStore) FindByKey(ctx context.Context, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error) {
	row, err := r.queries.GetEnrollment(ctx, r.db, sqlc.GetEnrollmentParams{
		StudentID: studentID,
		CourseID:  courseID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("enrollment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find enrollment", err)
	}
	return converter.EnrollmentFromRow(row), nil
}

// ListByStudent leaves HasAccess unset; it depends on the caller's clock.
func (r *EnrollmentReadStore) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*queries.EnrollmentView, error) {
	rows, err := r.queries.ListEnrollmentsByStudent(ctx, r.db, studentID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list enrollments", err)
	}

	result := make([]*queries.EnrollmentView, len(rows))
	for i, row := range rows {
		result[i] = &queries.EnrollmentView{
			CourseID:    row.CourseID,
			CourseTitle: row.CourseTitle,
			IsActive:    row.IsActive,
			ExpiresAt:   pgconv.TimeFromPgtype(row.ExpiresAt),
		}
	}
	return result, nil
}
