package commands

import (
	"context"
	"log/slog"
	"time"

	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/pkg/clock"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/metrics"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=provisioning.go -destination=../../../tests/mock/commands/provisioning_mock.go -package=commandsmock

type CourseProvision struct {
	CourseID  uuid.UUID
	Outcome   enrollment.Outcome
	ExpiresAt *time.Time
	Err       error
}

// ProvisionResult reports every course of one grant run, in order item order.
type ProvisionResult struct {
	OrderID uuid.UUID
	Courses []CourseProvision
}

func (r *ProvisionResult) add(courseID uuid.UUID, outcome enrollment.Outcome, expiresAt *time.Time, err error) {
	r.Courses = append(r.Courses, CourseProvision{
		CourseID:  courseID,
		Outcome:   outcome,
		ExpiresAt: expiresAt,
		Err:       err,
	})
}

func (r *ProvisionResult) Complete() bool {
	if r == nil || len(r.Courses) == 0 {
		return false
	}
	for _, c := range r.Courses {
		if !c.Outcome.Done() {
			return false
		}
	}
	return true
}

// AllFailed separates a total failure from a partial one.
func (r *ProvisionResult) AllFailed() bool {
	if r == nil || len(r.Courses) == 0 {
		return false
	}
	for _, c := range r.Courses {
		if c.Outcome.Done() {
			return false
		}
	}
	return true
}

// Pending lists the courses a retry still has to grant.
func (r *ProvisionResult) Pending() []uuid.UUID {
	if r == nil {
		return nil
	}
	var ids []uuid.UUID
	for _, c := range r.Courses {
		if !c.Outcome.Done() {
			ids = append(ids, c.CourseID)
		}
	}
	return ids
}

type ProvisioningCommands interface {
	Grant(ctx context.Context, userID uuid.UUID, courseIDs []uuid.UUID, policy enrollment.ExpiryPolicy) (*ProvisionResult, error)
	ProvisionOrder(ctx context.Context, orderID uuid.UUID) (*ProvisionResult, error)
	RetryProvisioning(ctx context.Context, session shared.Session, orderID uuid.UUID) (*ProvisionResult, error)
}

type provisioningUseCaseImpl struct {
	uow     shared.UnitOfWork
	cache   CartCacheInvalidator
	policy  enrollment.ExpiryPolicy
	metrics *metrics.Pipeline
	clock   clock.Clock
}

func NewProvisioningUseCase(
	uow shared.UnitOfWork,
	cache CartCacheInvalidator,
	policy enrollment.ExpiryPolicy,
	m *metrics.Pipeline,
	clk clock.Clock,
) ProvisioningCommands {
	return &provisioningUseCaseImpl{
		uow:     uow,
		cache:   cache,
		policy:  policy,
		metrics: m,
		clock:   clk,
	}
}

// Grant upserts each course in its own transaction. It keeps no saga log.
func (uc *provisioningUseCaseImpl) Grant(
	ctx context.Context,
	userID uuid.UUID,
	courseIDs []uuid.UUID,
	policy enrollment.ExpiryPolicy,
) (*ProvisionResult, error) {
	now := uc.clock.Now()
	result := &ProvisionResult{}

	for _, courseID := range courseIDs {
		var (
			outcome   enrollment.Outcome
			expiresAt time.Time
		)
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var gerr error
			outcome, expiresAt, gerr = grantOne(ctx, tx, userID, courseID, policy, now)
			return gerr
		})
		if err != nil {
			slog.Error("enrollment grant failed", "user_id", userID, "course_id", courseID, "error", err)
			uc.metrics.Provisioned(enrollment.OutcomeFailed.String())
			result.add(courseID, enrollment.OutcomeFailed, nil, err)
			continue
		}
		uc.metrics.Provisioned(outcome.String())
		result.add(courseID, outcome, &expiresAt, nil)
	}

	return result, partialFailure(result)
}

func (uc *provisioningUseCaseImpl) ProvisionOrder(ctx context.Context, orderID uuid.UUID) (*ProvisionResult, error) {
	now := uc.clock.Now()

	var (
		target *order.Order
		steps  []shared.ProvisioningStep
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, steps = nil, nil

		o, err := tx.Orders().Get(ctx, tx.DB(), orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(errs.ErrOrderNotFound, "order %s", orderID)
			}
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		switch o.Status() {
		case order.StatusVerified:
			if err := tx.Provisioning().Seed(ctx, tx.DB(), o.ID(), o.CourseIDs(), now); err != nil {
				return errs.Mark(err, errs.ErrPersistenceFailure)
			}
		case order.StatusProvisioned:
		default:
			return errs.Wrapf(errs.ErrOrderNotProvisionable, "order is %s", o.Status())
		}

		steps, err = tx.Provisioning().List(ctx, tx.DB(), o.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		target = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &ProvisionResult{OrderID: orderID}
	if target.Status() == order.StatusProvisioned {
		for _, step := range steps {
			result.add(step.CourseID, step.Outcome, step.ExpiresAt, nil)
		}
		return result, nil
	}

	for _, step := range steps {
		if step.Outcome.Done() {
			result.add(step.CourseID, step.Outcome, step.ExpiresAt, nil)
			continue
		}
		uc.provisionStep(ctx, target, step, now, result)
	}

	if !result.Complete() {
		slog.Warn("order provisioning incomplete",
			"order_id", orderID,
			"user_id", target.UserID(),
			"payment_mode", target.PaymentMode(),
			"pending", len(result.Pending()),
			"all_failed", result.AllFailed(),
		)
		return result, partialFailure(result)
	}

	if err := uc.completeOrder(ctx, target, now); err != nil {
		return result, err
	}
	return result, nil
}

func (uc *provisioningUseCaseImpl) provisionStep(
	ctx context.Context,
	o *order.Order,
	step shared.ProvisioningStep,
	now time.Time,
	result *ProvisionResult,
) {
	var (
		outcome   enrollment.Outcome
		expiresAt time.Time
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var gerr error
		outcome, expiresAt, gerr = grantOne(ctx, tx, o.UserID(), step.CourseID, uc.policy, now)
		if gerr != nil {
			return gerr
		}
		done := step
		done.Outcome = outcome
		done.ExpiresAt = &expiresAt
		done.LastError = ""
		if gerr = tx.Provisioning().Record(ctx, tx.DB(), done, now); gerr != nil {
			return errs.Mark(gerr, errs.ErrPersistenceFailure)
		}
		return nil
	})
	if err == nil {
		uc.metrics.Provisioned(outcome.String())
		result.add(step.CourseID, outcome, &expiresAt, nil)
		return
	}

	slog.Error("course provisioning failed",
		"order_id", o.ID(),
		"user_id", o.UserID(),
		"course_id", step.CourseID,
		"error", err,
	)
	uc.metrics.Provisioned(enrollment.OutcomeFailed.String())
	result.add(step.CourseID, enrollment.OutcomeFailed, nil, err)

	failed := step
	failed.Outcome = enrollment.OutcomeFailed
	failed.ExpiresAt = nil
	failed.LastError = err.Error()
	rerr := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Provisioning().Record(ctx, tx.DB(), failed, now)
	})
	if rerr != nil {
		slog.Error("failed to record provisioning failure", "order_id", o.ID(), "course_id", step.CourseID, "error", rerr)
	}
}

func (uc *provisioningUseCaseImpl) completeOrder(ctx context.Context, o *order.Order, now time.Time) error {
	var completed bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		completed = false

		locked, err := tx.Orders().GetForUpdate(ctx, tx.DB(), o.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if locked.Status() == order.StatusProvisioned {
			return nil
		}

		if _, err := tx.Carts().RemoveCourses(ctx, tx.DB(), locked.UserID(), locked.CourseIDs()); err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if err := locked.MarkProvisioned(now); err != nil {
			return errs.Mark(err, errs.ErrOrderNotProvisionable)
		}
		if err := tx.Orders().UpdateState(ctx, tx.DB(), locked); err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if err := writeOrderEvent(ctx, tx, shared.EventOrderProvisioned, newOrderEventPayload(locked, now)); err != nil {
			return err
		}

		dups, err := tx.Orders().PaidOrdersWithCourses(ctx, tx.DB(), locked.UserID(), locked.ID(), locked.CourseIDs())
		if err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if len(dups) > 0 {
			payload := newOrderEventPayload(locked, now)
			payload.DuplicateOf = dups
			if err := writeOrderEvent(ctx, tx, shared.EventOrderDuplicatePurchase, payload); err != nil {
				return err
			}
			slog.Warn("duplicate course purchase",
				"order_id", locked.ID(),
				"user_id", locked.UserID(),
				"duplicate_of", dups,
			)
		}
		completed = true
		return nil
	})
	if err != nil {
		return err
	}

	invalidateCart(ctx, uc.cache, o.UserID())
	if completed {
		slog.Info("order provisioned",
			"order_id", o.ID(),
			"user_id", o.UserID(),
			"payment_mode", o.PaymentMode(),
		)
	}
	return nil
}

func (uc *provisioningUseCaseImpl) RetryProvisioning(ctx context.Context, session shared.Session, orderID uuid.UUID) (*ProvisionResult, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}

	var status order.Status
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().Get(ctx, tx.DB(), orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Wrapf(errs.ErrOrderNotFound, "order %s", orderID)
			}
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if !o.IsOwnedBy(session.UserID) {
			return errs.Wrapf(errs.ErrOrderNotFound, "order %s", orderID)
		}
		status = o.Status()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if status != order.StatusVerified && status != order.StatusProvisioned {
		return nil, errs.Wrapf(errs.ErrOrderNotProvisionable, "order is %s", status)
	}

	slog.Info("provisioning retry requested", "order_id", orderID, "user_id", session.UserID)
	return uc.ProvisionOrder(ctx, orderID)
}

func grantOne(
	ctx context.Context,
	tx shared.Tx,
	studentID, courseID uuid.UUID,
	policy enrollment.ExpiryPolicy,
	now time.Time,
) (enrollment.Outcome, time.Time, error) {
	existing, err := tx.Enrollments().GetForUpdate(ctx, tx.DB(), studentID, courseID)
	if err != nil {
		return "", time.Time{}, errs.Mark(err, errs.ErrPersistenceFailure)
	}

	granted, outcome := enrollment.Grant(existing, studentID, courseID, policy, now)
	if outcome == enrollment.OutcomeUnchanged {
		return outcome, granted.ExpiresAt(), nil
	}

	stored, err := tx.Enrollments().Upsert(ctx, tx.DB(), granted)
	if err != nil {
		return "", time.Time{}, errs.Mark(err, errs.ErrPersistenceFailure)
	}
	return outcome, stored.ExpiresAt(), nil
}

func partialFailure(result *ProvisionResult) error {
	if len(result.Courses) == 0 || result.Complete() {
		return nil
	}
	pending := len(result.Pending())
	if result.AllFailed() {
		return errs.Wrapf(errs.ErrEnrollmentPartialFailure, "all %d courses failed", pending)
	}
	return errs.Wrapf(errs.ErrEnrollmentPartialFailure, "%d of %d courses not provisioned", pending, len(result.Courses))
}
