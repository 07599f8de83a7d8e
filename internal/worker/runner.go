package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ticker runs tick on a fixed interval until Stop is called.
type ticker struct {
	name     string
	interval time.Duration
	tick     func(ctx context.Context)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (t *ticker) Start(context.Context) error {
	if t.interval <= 0 {
		slog.Info("worker disabled", "worker", t.name)
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		tk := time.NewTicker(t.interval)
		defer tk.Stop()
		slog.Info("worker started", "worker", t.name, "interval", t.interval)
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				t.tick(ctx)
			}
		}
	}()
	return nil
}

func (t *ticker) Stop(ctx context.Context) error {
	if t.cancel == nil {
		return nil
	}
	t.cancel()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		slog.Info("worker stopped", "worker", t.name)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
