package commands

import (
	"context"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/domain/payment"
	"learnhub-checkout/internal/pkg/config"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/ports_mock.go -package=commandsmock

// PaymentGateway opens a processor order sized to the checkout amount.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error)
}

type CartCacheInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type EventPublisher interface {
	Publish(ctx context.Context, msg shared.OutboxMessage) error
}

// PaymentSettings is the part of the processor configuration the pipeline reads.
type PaymentSettings struct {
	KeyID     string
	KeySecret string
	Currency  string
	DemoMode  bool
}

func NewPaymentSettings(cfg config.PaymentConfig) PaymentSettings {
	return PaymentSettings{
		KeyID:     cfg.KeyID,
		KeySecret: cfg.KeySecret,
		Currency:  cfg.Currency,
		DemoMode:  cfg.DemoMode,
	}
}

func (s PaymentSettings) Configured() bool {
	return s.KeyID != "" && s.KeySecret != ""
}

// DemoAllowed is true only when there is no processor to verify against.
func (s PaymentSettings) DemoAllowed() bool {
	return !s.Configured() && s.DemoMode
}

// Mode picks how a new order is paid for.
func (s PaymentSettings) Mode() (order.PaymentMode, error) {
	switch {
	case s.Configured():
		return order.PaymentModeGateway, nil
	case s.DemoMode:
		return order.PaymentModeDemo, nil
	default:
		return "", errs.Wrap(errs.ErrGatewayUnavailable, "payment processor is not configured")
	}
}
