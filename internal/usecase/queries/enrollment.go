package queries

import (
	"context"

	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/pkg/clock"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=enrollment.go -destination=../../../tests/mock/queries/enrollment_mock.go -package=queriesmock

type EnrollmentViewStore interface {
	FindByKey(ctx context.Context, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*EnrollmentView, error)
}

type EnrollmentQueries interface {
	List(ctx context.Context, session shared.Session) ([]*EnrollmentView, error)
	Access(ctx context.Context, session shared.Session, courseID uuid.UUID) (*AccessView, error)
}

type enrollmentQueriesImpl struct {
	store EnrollmentViewStore
	clock clock.Clock
}

func NewEnrollmentQueries(store EnrollmentViewStore, clk clock.Clock) EnrollmentQueries {
	return &enrollmentQueriesImpl{store: store, clock: clk}
}

func (q *enrollmentQueriesImpl) List(ctx context.Context, session shared.Session) ([]*EnrollmentView, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}
	views, err := q.store.ListByStudent(ctx, session.UserID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPersistenceFailure)
	}
	now := q.clock.Now()
	for _, v := range views {
		v.HasAccess = v.IsActive && now.Before(v.ExpiresAt)
	}
	return views, nil
}

func (q *enrollmentQueriesImpl) Access(ctx context.Context, session shared.Session, courseID uuid.UUID) (*AccessView, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}
	e, err := q.store.FindByKey(ctx, session.UserID, courseID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &AccessView{CourseID: courseID}, nil
		}
		return nil, errs.Mark(err, errs.ErrPersistenceFailure)
	}
	expiresAt := e.ExpiresAt()
	return &AccessView{
		CourseID:  courseID,
		HasAccess: e.HasAccess(q.clock.Now()),
		ExpiresAt: &expiresAt,
	}, nil
}
