package converter

import (
	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/infra/sqlc"
	"learnhub-checkout/internal/pkg/pgconv"
)

func EnrollmentFromRow(row sqlc.Enrollments) *enrollment.Enrollment {
	return enrollment.Reconstruct(
		row.StudentID,
		row.CourseID,
		row.IsActive,
		pgconv.TimeFromPgtype(row.ExpiresAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func EnrollmentToUpsertParams(e *enrollment.Enrollment) sqlc.UpsertEnrollmentParams {
	return sqlc.UpsertEnrollmentParams{
		StudentID: e.StudentID(),
		CourseID:  e.CourseID(),
		ExpiresAt: pgconv.TimeToPgtype(e.ExpiresAt()),
		Now:       pgconv.TimeToPgtype(e.UpdatedAt()),
	}
}
