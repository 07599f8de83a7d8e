package enrollment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTerm    = errors.New("enrollment term must be positive")
	ErrUnknownOutcome = errors.New("unknown provisioning outcome")
)

// Outcome of granting one course.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeGranted   Outcome = "granted"
	OutcomeExtended  Outcome = "extended"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomePending, OutcomeGranted, OutcomeExtended, OutcomeUnchanged, OutcomeFailed:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutcome, s)
	}
}

// Done is true when the course no longer needs a grant attempt.
func (o Outcome) Done() bool {
	return o == OutcomeGranted || o == OutcomeExtended || o == OutcomeUnchanged
}

func (o Outcome) String() string { return string(o) }

// ExpiryPolicy decides how long a purchase grants access for.
type ExpiryPolicy struct {
	Term time.Duration
}

func NewExpiryPolicy(term time.Duration) (ExpiryPolicy, error) {
	if term <= 0 {
		return ExpiryPolicy{}, ErrInvalidTerm
	}
	return ExpiryPolicy{Term: term}, nil
}

func (p ExpiryPolicy) ExpiresAt(now time.Time) time.Time {
	return now.Add(p.Term)
}

// Enrollment keyed by (student, course). At most one per pair.
type Enrollment struct {
	studentID uuid.UUID
	courseID  uuid.UUID
	isActive  bool
	expiresAt time.Time
	createdAt time.Time
	updatedAt time.Time
}

func Reconstruct(studentID, courseID uuid.UUID, isActive bool, expiresAt, createdAt, updatedAt time.Time) *Enrollment {
	return &Enrollment{
		studentID: studentID,
		courseID:  courseID,
		isActive:  isActive,
		expiresAt: expiresAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Grant applies a purchase to the existing row (nil when none). expiresAt never moves backwards.
func Grant(existing *Enrollment, studentID, courseID uuid.UUID, policy ExpiryPolicy, now time.Time) (*Enrollment, Outcome) {
	target := policy.ExpiresAt(now)

	if existing == nil {
		return &Enrollment{
			studentID: studentID,
			courseID:  courseID,
			isActive:  true,
			expiresAt: target,
			createdAt: now,
			updatedAt: now,
		}, OutcomeGranted
	}

	next := *existing
	next.expiresAt = laterOf(existing.expiresAt, target)
	next.updatedAt = now

	if !existing.isActive {
		next.isActive = true
		return &next, OutcomeGranted
	}
	if next.expiresAt.After(existing.expiresAt) {
		return &next, OutcomeExtended
	}
	next.updatedAt = existing.updatedAt
	return &next, OutcomeUnchanged
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func (e *Enrollment) HasAccess(now time.Time) bool {
	return e.isActive && now.Before(e.expiresAt)
}

func (e *Enrollment) StudentID() uuid.UUID { return e.studentID }
func (e *Enrollment) CourseID() uuid.UUID  { return e.courseID }
func (e *Enrollment) IsActive() bool       { return e.isActive }
func (e *Enrollment) ExpiresAt() time.Time { return e.expiresAt }
func (e *Enrollment) CreatedAt() time.Time { return e.createdAt }
func (e *Enrollment) UpdatedAt() time.Time { return e.updatedAt }
