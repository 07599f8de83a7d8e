//go:build unit || e2e

package builder

import (
	"time"

	"learnhub-checkout/internal/domain/enrollment"

	"github.com/google/uuid"
)

type EnrollmentBuilder struct {
	StudentID uuid.UUID
	CourseID  uuid.UUID
	IsActive  bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

func NewEnrollmentBuilder() *EnrollmentBuilder {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &EnrollmentBuilder{
		StudentID: uuid.New(),
		CourseID:  uuid.New(),
		IsActive:  true,
		ExpiresAt: now.Add(30 * 24 * time.Hour),
		CreatedAt: now.Add(-24 * time.Hour),
	}
}

func (b *EnrollmentBuilder) With(mutate func(*EnrollmentBuilder)) *EnrollmentBuilder {
	mutate(b)
	return b
}

func (b *EnrollmentBuilder) For(studentID, courseID uuid.UUID) *EnrollmentBuilder {
	b.StudentID = studentID
	b.CourseID = courseID
	return b
}

func (b *EnrollmentBuilder) ExpiringAt(t time.Time) *EnrollmentBuilder {
	b.ExpiresAt = t
	return b
}

func (b *EnrollmentBuilder) AsInactive() *EnrollmentBuilder {
	b.IsActive = false
	return b
}

func (b *EnrollmentBuilder) BuildDomain() *enrollment.Enrollment {
	return enrollment.Reconstruct(b.StudentID, b.CourseID, b.IsActive, b.ExpiresAt, b.CreatedAt, b.CreatedAt)
}
