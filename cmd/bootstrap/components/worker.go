package components

import (
	"learnhub-checkout/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewOutboxPoller,
		worker.NewReconciler,
	),
	fx.Invoke(registerWorkers),
)

func registerWorkers(lc fx.Lifecycle, poller *worker.OutboxPoller, reconciler *worker.Reconciler) {
	lc.Append(fx.Hook{OnStart: poller.Start, OnStop: poller.Stop})
	lc.Append(fx.Hook{OnStart: reconciler.Start, OnStop: reconciler.Stop})
}
