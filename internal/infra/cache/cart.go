// Package cache is a read-through Redis cache in front of the durable cart rows.
// Postgres stays the source of truth. Every cart write bumps the user's version
// key and deletes the cached view; a fill only lands if the version it read
// before loading is still current.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"learnhub-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var ErrCacheMiss = errors.New("cache miss")

const (
	defaultLoadTimeout = 5 * time.Second
	versionTTL         = 24 * time.Hour
)

// KEYS[1] version key, KEYS[2] cart key. ARGV: expected version, payload, ttl in ms.
var storeIfVersion = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then v = '0' end
if v ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

type CartCache struct {
	client      *redis.Client
	baseTTL     time.Duration
	loadTimeout time.Duration
	group       singleflight.Group
}

func NewCartCache(client *redis.Client, baseTTL time.Duration) *CartCache {
	if baseTTL <= 0 {
		baseTTL = 15 * time.Minute
	}
	return &CartCache{
		client:      client,
		baseTTL:     baseTTL,
		loadTimeout: defaultLoadTimeout,
	}
}

func (c *CartCache) Get(ctx context.Context, userID uuid.UUID) (*queries.CartView, error) {
	data, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var view queries.CartView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &view, nil
}

// GetOrLoad returns the cached view, or runs load once for all concurrent callers of the same user.
// The shared load runs detached from any one caller's context; each caller stops waiting when its own ends.
// Redis faults degrade to calling load; only load errors and the caller's context error are returned.
func (c *CartCache) GetOrLoad(ctx context.Context, userID uuid.UUID, load func(ctx context.Context) (*queries.CartView, error)) (*queries.CartView, error) {
	view, err := c.Get(ctx, userID)
	if err == nil {
		return view, nil
	}
	if !errors.Is(err, ErrCacheMiss) && !errors.Is(err, context.Canceled) {
		slog.Debug("cart cache read failed", "user_id", userID, "error", err)
	}

	ch := c.group.DoChan(cacheKey(userID), func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()
		return c.fill(loadCtx, userID, load)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*queries.CartView), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fill reads the version before load so a write that lands during the load refuses the store.
func (c *CartCache) fill(ctx context.Context, userID uuid.UUID, load func(ctx context.Context) (*queries.CartView, error)) (*queries.CartView, error) {
	version, verErr := c.version(ctx, userID)

	view, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if verErr != nil {
		slog.Warn("cart cache version read failed, skipping fill", "user_id", userID, "error", verErr)
		return view, nil
	}
	stored, err := c.storeIfCurrent(ctx, userID, version, view)
	if err != nil {
		slog.Warn("cart cache fill failed", "user_id", userID, "error", err)
		return view, nil
	}
	if !stored {
		slog.Debug("cart changed during load, fill dropped", "user_id", userID)
	}
	return view, nil
}

func (c *CartCache) version(ctx context.Context, userID uuid.UUID) (string, error) {
	v, err := c.client.Get(ctx, versionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis version read failed: %w", err)
	}
	return v, nil
}

// storeIfCurrent adds up to a minute of jitter so carts cached together do not expire together.
func (c *CartCache) storeIfCurrent(ctx context.Context, userID uuid.UUID, version string, view *queries.CartView) (bool, error) {
	data, err := json.Marshal(view)
	if err != nil {
		return false, fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Int64N(int64(time.Minute))) // #nosec G404 -- ttl jitter only
	ttl := c.baseTTL + jitter

	n, err := storeIfVersion.Run(ctx, c.client,
		[]string{versionKey(userID), cacheKey(userID)},
		version, data, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis conditional set failed: %w", err)
	}
	return n == 1, nil
}

// Invalidate detaches any in-flight load from later readers, then bumps the version and drops the view atomically.
func (c *CartCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	key := cacheKey(userID)
	c.group.Forget(key)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(userID))
		pipe.Expire(ctx, versionKey(userID), versionTTL)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}
	return nil
}

func cacheKey(userID uuid.UUID) string {
	return "cart:" + userID.String()
}

func versionKey(userID uuid.UUID) string {
	return "cart:ver:" + userID.String()
}
