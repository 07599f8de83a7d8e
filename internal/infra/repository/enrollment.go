package repository

import (
	"context"

	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/infra/repository/converter"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type EnrollmentWriteQueries interface {
	GetEnrollmentForUpdate(ctx context.Context, db sqlc.DBTX, arg sqlc.GetEnrollmentParams) (sqlc.Enrollments, error)
	UpsertEnrollment(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertEnrollmentParams) (sqlc.Enrollments, error)
}

type EnrollmentRepository struct {
	queries EnrollmentWriteQueries
	db      sqlc.DBTX
}

func NewEnrollmentRepository(queries EnrollmentWriteQueries, db sqlc.DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *EnrollmentRepository) GetForUpdate(ctx context.Context, tx sqlc.DBTX, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error) {
	row, err := r.queries.GetEnrollmentForUpdate(ctx, tx, sqlc.GetEnrollmentParams{
		StudentID: studentID,
		CourseID:  courseID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to lock enrollment", err)
	}
	return converter.EnrollmentFromRow(row), nil
}

// Upsert returns the row as stored, which may carry a later expiry than requested.
func (r *EnrollmentRepository) Upsert(ctx context.Context, tx sqlc.DBTX, e *enrollment.Enrollment) (*enrollment.Enrollment, error) {
	row, err := r.queries.UpsertEnrollment(ctx, tx, converter.EnrollmentToUpsertParams(e))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to upsert enrollment", err)
	}
	return converter.EnrollmentFromRow(row), nil
}
