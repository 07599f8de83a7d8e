package commands

import (
	"context"
	"log/slog"
	"time"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/domain/payment"
	"learnhub-checkout/internal/infra"
	"learnhub-checkout/internal/pkg/clock"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/metrics"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=verification.go -destination=../../../tests/mock/commands/verification_mock.go -package=commandsmock

const paymentEventVerified = "verified"

type VerifyRequest struct {
	OrderID        uuid.UUID
	GatewayOrderID string
	PaymentID      string
	Signature      string
	UserID         *uuid.UUID
	Courses        []order.ExpectedItem
}

type VerifyResult struct {
	OrderID     uuid.UUID
	Verified    bool
	Replayed    bool
	Status      order.Status
	PaymentMode order.PaymentMode
	Provision   *ProvisionResult
}

// ProvisionPending is true when payment was trusted but some course still lacks an enrollment.
func (r *VerifyResult) ProvisionPending() bool {
	return r.Verified && r.Status != order.StatusProvisioned
}

type VerificationCommands interface {
	// Verify returns a non-nil result alongside a rejection error when the order was moved to FAILED.
	Verify(ctx context.Context, session shared.Session, req VerifyRequest) (*VerifyResult, error)
	VerifyDemo(ctx context.Context, session shared.Session, orderID uuid.UUID) (*VerifyResult, error)
}

type verificationUseCaseImpl struct {
	uow         shared.UnitOfWork
	provisioner ProvisioningCommands
	payments    PaymentSettings
	metrics     *metrics.Pipeline
	clock       clock.Clock
}

func NewVerificationUseCase(
	uow shared.UnitOfWork,
	provisioner ProvisioningCommands,
	payments PaymentSettings,
	m *metrics.Pipeline,
	clk clock.Clock,
) VerificationCommands {
	return &verificationUseCaseImpl{
		uow:         uow,
		provisioner: provisioner,
		payments:    payments,
		metrics:     m,
		clock:       clk,
	}
}

func (uc *verificationUseCaseImpl) Verify(ctx context.Context, session shared.Session, req VerifyRequest) (*VerifyResult, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}
	if req.UserID != nil && *req.UserID != session.UserID {
		return nil, errs.ErrForbidden
	}
	if req.PaymentID == "" || req.GatewayOrderID == "" || req.Signature == "" {
		return nil, errs.Wrap(errs.ErrDomainValidation, "payment id, gateway order id and signature are required")
	}
	signer, err := payment.NewSigner(uc.payments.KeySecret)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrGatewayUnavailable)
	}
	now := uc.clock.Now()

	var (
		result    *VerifyResult
		rejection error
		provision bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result, rejection, provision = nil, nil, false

		o, err := lockOwnedOrder(ctx, tx, session, req.OrderID)
		if err != nil {
			return err
		}

		if o.Status().IsPaid() {
			if o.PaymentID() != req.PaymentID {
				return errs.Wrap(errs.ErrOrderNotVerifiable, "order already paid with a different payment")
			}
			result = verifiedResult(o, true)
			provision = o.Status() == order.StatusVerified
			return nil
		}
		if o.Status() != order.StatusPending {
			return errs.Wrapf(errs.ErrOrderNotVerifiable, "order is %s", o.Status())
		}

		if req.GatewayOrderID != o.GatewaySessionID() || !signer.Verify(req.GatewayOrderID, req.PaymentID, req.Signature) {
			rejection = errs.ErrSignatureMismatch
			result, err = uc.reject(ctx, tx, o, order.ReasonSignatureMismatch, now)
			return err
		}
		if err := o.CheckExpected(req.Courses); err != nil {
			rejection = errs.Mark(err, errs.ErrAmountMismatch)
			result, err = uc.reject(ctx, tx, o, order.ReasonAmountMismatch, now)
			return err
		}

		fresh, err := tx.PaymentEvents().Record(ctx, tx.DB(), req.PaymentID, o.ID(), paymentEventVerified, now)
		if err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if !fresh {
			return errs.Wrap(errs.ErrOrderNotVerifiable, "payment id was already used")
		}

		if err := uc.accept(ctx, tx, o, req.PaymentID, now); err != nil {
			return err
		}
		result = verifiedResult(o, false)
		provision = true
		return nil
	})
	if err != nil {
		uc.metrics.Verification("error")
		return nil, err
	}

	if rejection != nil {
		uc.metrics.Verification("rejected")
		slog.Warn("payment verification rejected",
			"order_id", req.OrderID,
			"user_id", session.UserID,
			"payment_mode", order.PaymentModeGateway,
			"reason", rejection.Error(),
		)
		return result, rejection
	}

	if result.Replayed {
		uc.metrics.Verification("replayed")
	} else {
		uc.metrics.Verification("verified")
		slog.Info("payment verified",
			"order_id", req.OrderID,
			"user_id", session.UserID,
			"payment_mode", order.PaymentModeGateway,
		)
	}

	if provision {
		uc.provision(ctx, result)
	}
	return result, nil
}

// VerifyDemo trusts a synthetic payment. It refuses to run while a processor is configured.
func (uc *verificationUseCaseImpl) VerifyDemo(ctx context.Context, session shared.Session, orderID uuid.UUID) (*VerifyResult, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}
	if !uc.payments.DemoAllowed() {
		return nil, errs.Wrap(errs.ErrOrderNotVerifiable, "demo verification is disabled")
	}
	now := uc.clock.Now()

	var (
		result    *VerifyResult
		provision bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result, provision = nil, false

		o, err := lockOwnedOrder(ctx, tx, session, orderID)
		if err != nil {
			return err
		}
		if o.PaymentMode() != order.PaymentModeDemo {
			return errs.Wrap(errs.ErrOrderNotVerifiable, "order is not a demo order")
		}
		if o.Status().IsPaid() {
			result = verifiedResult(o, true)
			provision = o.Status() == order.StatusVerified
			return nil
		}
		if o.Status() != order.StatusCreated {
			return errs.Wrapf(errs.ErrOrderNotVerifiable, "order is %s", o.Status())
		}

		paymentID := payment.DemoPaymentID(o.ID())
		if _, err := tx.PaymentEvents().Record(ctx, tx.DB(), paymentID, o.ID(), paymentEventVerified, now); err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if err := uc.accept(ctx, tx, o, paymentID, now); err != nil {
			return err
		}
		result = verifiedResult(o, false)
		provision = true
		return nil
	})
	if err != nil {
		uc.metrics.Verification("error")
		return nil, err
	}

	uc.metrics.Verification("demo")
	slog.Warn("demo payment accepted without processor verification",
		"order_id", orderID,
		"user_id", session.UserID,
		"payment_mode", order.PaymentModeDemo,
	)

	if provision {
		uc.provision(ctx, result)
	}
	return result, nil
}

func (uc *verificationUseCaseImpl) accept(ctx context.Context, tx shared.Tx, o *order.Order, paymentID string, now time.Time) error {
	if err := o.MarkVerified(paymentID, now); err != nil {
		return errs.Mark(err, errs.ErrOrderNotVerifiable)
	}
	if err := tx.Orders().UpdateState(ctx, tx.DB(), o); err != nil {
		return errs.Mark(err, errs.ErrPersistenceFailure)
	}
	return writeOrderEvent(ctx, tx, shared.EventOrderVerified, newOrderEventPayload(o, now))
}

func (uc *verificationUseCaseImpl) reject(
	ctx context.Context,
	tx shared.Tx,
	o *order.Order,
	reason order.FailureReason,
	now time.Time,
) (*VerifyResult, error) {
	if err := o.MarkFailed(reason, now); err != nil {
		return nil, errs.Mark(err, errs.ErrOrderNotVerifiable)
	}
	if err := tx.Orders().UpdateState(ctx, tx.DB(), o); err != nil {
		return nil, errs.Mark(err, errs.ErrPersistenceFailure)
	}
	if err := writeOrderEvent(ctx, tx, shared.EventOrderFailed, newOrderEventPayload(o, now)); err != nil {
		return nil, err
	}
	return &VerifyResult{
		OrderID:     o.ID(),
		Status:      o.Status(),
		PaymentMode: o.PaymentMode(),
	}, nil
}

// provision runs after commit; its failure leaves the order VERIFIED for a later retry.
func (uc *verificationUseCaseImpl) provision(ctx context.Context, result *VerifyResult) {
	pr, err := uc.provisioner.ProvisionOrder(ctx, result.OrderID)
	result.Provision = pr
	if err != nil {
		slog.Error("provisioning after verification failed",
			"order_id", result.OrderID,
			"payment_mode", result.PaymentMode,
			"error", err,
		)
		return
	}
	if pr.Complete() {
		result.Status = order.StatusProvisioned
	}
}

func lockOwnedOrder(ctx context.Context, tx shared.Tx, session shared.Session, orderID uuid.UUID) (*order.Order, error) {
	o, err := tx.Orders().GetForUpdate(ctx, tx.DB(), orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(errs.ErrOrderNotFound, "order %s", orderID)
		}
		return nil, errs.Mark(err, errs.ErrPersistenceFailure)
	}
	if !o.IsOwnedBy(session.UserID) {
		return nil, errs.Wrapf(errs.ErrOrderNotFound, "order %s", orderID)
	}
	return o, nil
}

func verifiedResult(o *order.Order, replayed bool) *VerifyResult {
	return &VerifyResult{
		OrderID:     o.ID(),
		Verified:    true,
		Replayed:    replayed,
		Status:      o.Status(),
		PaymentMode: o.PaymentMode(),
	}
}
