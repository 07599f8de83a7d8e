package worker

import (
	"context"
	"log/slog"
	"time"

	"learnhub-checkout/internal/pkg/config"
	"learnhub-checkout/internal/usecase/commands"
)

// Reconciler expires abandoned orders and purges expired idempotency keys.
type Reconciler struct {
	ticker
	commands   commands.ReconcileCommands
	pendingTTL time.Duration
}

func NewReconciler(cmds commands.ReconcileCommands, cfg config.ReconcileConfig) *Reconciler {
	r := &Reconciler{commands: cmds, pendingTTL: cfg.PendingTTL}
	r.ticker = ticker{name: "reconciler", interval: cfg.Interval, tick: r.RunOnce}
	return r
}

func (r *Reconciler) RunOnce(ctx context.Context) {
	if _, err := r.commands.ExpireStalePending(ctx, r.pendingTTL); err != nil {
		slog.Error("expiring stale orders failed", "error", err)
	}
	if _, err := r.commands.PurgeExpiredIdempotencyKeys(ctx); err != nil {
		slog.Error("purging idempotency keys failed", "error", err)
	}
}
