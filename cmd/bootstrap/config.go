package bootstrap

import (
	"learnhub-checkout/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
		func(cfg config.Config) config.KafkaConfig { return cfg.Kafka },
		func(cfg config.Config) config.ReconcileConfig { return cfg.Reconcile },
	),
)
