//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/shared"
	"learnhub-checkout/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpireStalePending(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(gatewaySettings(), nil)
	uc := commands.NewReconcileUseCase(p.store, p.metrics, p.clock)
	now := p.clock.Now()
	userID := uuid.New()

	stalePending, err := builder.NewOrderBuilder().WithUser(userID).With(func(b *builder.OrderBuilder) {
		b.Now = now.Add(-2 * time.Hour)
	}).BuildPending("order_gw_old")
	require.NoError(t, err)
	staleCreated, err := builder.NewOrderBuilder().WithUser(userID).With(func(b *builder.OrderBuilder) {
		b.Now = now.Add(-3 * time.Hour)
	}).BuildDomain()
	require.NoError(t, err)
	fresh, err := builder.NewOrderBuilder().WithUser(userID).With(func(b *builder.OrderBuilder) {
		b.Now = now.Add(-10 * time.Minute)
	}).BuildPending("order_gw_new")
	require.NoError(t, err)
	paid, err := builder.NewOrderBuilder().WithUser(userID).With(func(b *builder.OrderBuilder) {
		b.Now = now.Add(-5 * time.Hour)
	}).BuildPending("order_gw_paid")
	require.NoError(t, err)
	require.NoError(t, paid.MarkVerified("pay_1", now.Add(-4*time.Hour)))

	for _, o := range []*order.Order{stalePending, staleCreated, fresh, paid} {
		p.store.PutOrder(o)
	}

	t.Run("rejects a non-positive ttl", func(t *testing.T) {
		_, err := uc.ExpireStalePending(ctx, 0)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})

	t.Run("only open orders past the cutoff expire", func(t *testing.T) {
		n, err := uc.ExpireStalePending(ctx, time.Hour)

		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.Equal(t, order.StatusExpired, p.store.Order(stalePending.ID()).Status())
		assert.Equal(t, order.StatusExpired, p.store.Order(staleCreated.ID()).Status())
		assert.Equal(t, order.StatusPending, p.store.Order(fresh.ID()).Status())
		assert.Equal(t, order.StatusVerified, p.store.Order(paid.ID()).Status())
	})

	t.Run("a second sweep finds nothing", func(t *testing.T) {
		n, err := uc.ExpireStalePending(ctx, time.Hour)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestPurgeExpiredIdempotencyKeys(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(gatewaySettings(), nil)
	uc := commands.NewReconcileUseCase(p.store, p.metrics, p.clock)
	userID := uuid.New()
	live, dead := uuid.New(), uuid.New()
	p.store.PutIdempotency(shared.IdempotencyRecord{Key: live, UserID: userID, Status: shared.IdempotencyCompleted, ExpiresAt: time.Now().Add(time.Hour)})
	p.store.PutIdempotency(shared.IdempotencyRecord{Key: dead, UserID: userID, Status: shared.IdempotencyCompleted, ExpiresAt: time.Now().Add(-time.Hour)})

	n, err := uc.PurgeExpiredIdempotencyKeys(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, found := p.store.Idempotency(live, userID)
	assert.True(t, found)
	_, found = p.store.Idempotency(dead, userID)
	assert.False(t, found)
}
