package gateway

import (
	"context"
	"log/slog"
	"time"

	"learnhub-checkout/internal/domain/payment"

	"github.com/sony/gobreaker/v2"
)

type SessionCreator interface {
	CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error)
}

type BreakerSettings struct {
	Name             string
	MaxHalfOpen      uint32
	OpenTimeout      time.Duration
	ConsecutiveFails uint32
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:             "payment-gateway",
		MaxHalfOpen:      1,
		OpenTimeout:      30 * time.Second,
		ConsecutiveFails: 5,
	}
}

// BreakerGateway stops calling the processor after repeated failures.
// While open, CreateSession fails fast with gobreaker.ErrOpenState.
type BreakerGateway struct {
	next SessionCreator
	cb   *gobreaker.CircuitBreaker[*payment.Session]
}

func NewBreakerGateway(next SessionCreator, s BreakerSettings) *BreakerGateway {
	cb := gobreaker.NewCircuitBreaker[*payment.Session](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxHalfOpen,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	})
	return &BreakerGateway{next: next, cb: cb}
}

func (g *BreakerGateway) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	return g.cb.Execute(func() (*payment.Session, error) {
		return g.next.CreateSession(ctx, req)
	})
}

func (g *BreakerGateway) State() gobreaker.State {
	return g.cb.State()
}
