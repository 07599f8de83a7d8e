package components

import (
	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/pkg/clock"
	"learnhub-checkout/internal/pkg/config"
	"learnhub-checkout/internal/pkg/metrics"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/queries"
	"learnhub-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	commands.NewPaymentSettings,
	func(cfg config.Config) (enrollment.ExpiryPolicy, error) {
		return enrollment.NewExpiryPolicy(cfg.Enrollment.Term)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCartUseCase,
		commands.NewDiscountEngine,
		commands.NewProvisioningUseCase,
		commands.NewVerificationUseCase,
		commands.NewPaymentOutcomeAdapter,
		NewCheckoutUseCase,
		commands.NewReconcileUseCase,
		commands.NewOutboxRelay,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCartQueries,
		queries.NewOrderQueries,
		queries.NewEnrollmentQueries,
	),
)

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	gw commands.PaymentGateway,
	verifier commands.VerificationCommands,
	payments commands.PaymentSettings,
	cfg config.Config,
	m *metrics.Pipeline,
	clk clock.Clock,
) commands.CheckoutCommands {
	return commands.NewCheckoutUseCase(uow, gw, verifier, payments, cfg.Checkout.IdempotencyTTL, m, clk)
}
