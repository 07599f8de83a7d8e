package worker

import (
	"context"
	"log/slog"

	"learnhub-checkout/internal/pkg/config"
	"learnhub-checkout/internal/usecase/commands"
)

// OutboxPoller relays committed outbox events to the broker.
type OutboxPoller struct {
	ticker
	relay     commands.OutboxCommands
	batchSize int
}

func NewOutboxPoller(relay commands.OutboxCommands, cfg config.KafkaConfig) *OutboxPoller {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 100
	}
	p := &OutboxPoller{relay: relay, batchSize: batch}
	p.ticker = ticker{name: "outbox-poller", interval: cfg.PollInterval, tick: p.RunOnce}
	if !cfg.Enabled() {
		p.interval = 0
	}
	return p
}

// RunOnce drains full batches so a backlog clears within one tick.
func (p *OutboxPoller) RunOnce(ctx context.Context) {
	for ctx.Err() == nil {
		sent, err := p.relay.RelayPending(ctx, p.batchSize)
		if err != nil {
			slog.Error("outbox relay failed", "error", err)
			return
		}
		if sent < p.batchSize {
			return
		}
	}
}
