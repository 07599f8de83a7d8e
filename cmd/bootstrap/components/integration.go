package components

import (
	"context"

	"learnhub-checkout/internal/infra/gateway"
	"learnhub-checkout/internal/infra/publisher"
	"learnhub-checkout/internal/pkg/config"
	"learnhub-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

// IntegrationModule wires the outbound adapters: the payment processor and the event broker.
var IntegrationModule = fx.Module("integration",
	fx.Provide(
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(commands.EventPublisher)),
		),
	),
)

func NewPaymentGateway(cfg config.PaymentConfig) *gateway.BreakerGateway {
	return gateway.NewBreakerGateway(gateway.NewClient(cfg), gateway.DefaultBreakerSettings())
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.KafkaConfig) *publisher.KafkaPublisher {
	p := publisher.NewKafkaPublisher(publisher.NewKafkaWriter(cfg))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p
}
