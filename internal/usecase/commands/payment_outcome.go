package commands

import (
	"context"
	"log/slog"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/domain/payment"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/metrics"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payment_outcome.go -destination=../../../tests/mock/commands/payment_outcome_mock.go -package=commandsmock

// PaymentOutcomeAdapter turns the processor widget's result into a verification call.
// It never writes to the order or enrollment stores itself.
type PaymentOutcomeAdapter interface {
	Deliver(
		ctx context.Context,
		session shared.Session,
		orderID uuid.UUID,
		outcome payment.Outcome,
		expected []order.ExpectedItem,
	) (*VerifyResult, error)
}

type paymentOutcomeAdapterImpl struct {
	verifier VerificationCommands
	metrics  *metrics.Pipeline
}

func NewPaymentOutcomeAdapter(verifier VerificationCommands, m *metrics.Pipeline) PaymentOutcomeAdapter {
	return &paymentOutcomeAdapterImpl{verifier: verifier, metrics: m}
}

func (a *paymentOutcomeAdapterImpl) Deliver(
	ctx context.Context,
	session shared.Session,
	orderID uuid.UUID,
	outcome payment.Outcome,
	expected []order.ExpectedItem,
) (*VerifyResult, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}
	if outcome == nil {
		return nil, errs.Wrap(errs.ErrDomainValidation, "payment outcome is required")
	}
	a.metrics.PaymentOutcome(string(outcome.Type()))

	switch o := outcome.(type) {
	case payment.Success:
		return a.verifier.Verify(ctx, session, VerifyRequest{
			OrderID:        orderID,
			GatewayOrderID: o.GatewayOrderID,
			PaymentID:      o.PaymentID,
			Signature:      o.Signature,
			Courses:        expected,
		})

	case payment.Failure:
		slog.Warn("payment failed at processor",
			"order_id", orderID,
			"user_id", session.UserID,
			"payment_mode", order.PaymentModeGateway,
			"code", o.Code,
			"reason", o.Reason,
		)
		err := errs.Wrapf(errs.ErrPaymentFailedAtGateway, "processor code %q", o.Code)
		if o.Reason != "" {
			err = errs.WithDetail(err, o.Reason)
		}
		return nil, err

	case payment.Cancelled:
		slog.Info("payment cancelled by user",
			"order_id", orderID,
			"user_id", session.UserID,
			"payment_mode", order.PaymentModeGateway,
		)
		return nil, errs.ErrPaymentCancelledByUser

	default:
		return nil, errs.Wrapf(payment.ErrUnknownOutcome, "%T", outcome)
	}
}
