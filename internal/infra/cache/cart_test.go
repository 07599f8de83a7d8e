//go:build unit

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"learnhub-checkout/internal/usecase/queries"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*CartCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCartCache(client, 10*time.Minute), mr
}

func sampleView(userID uuid.UUID) *queries.CartView {
	return &queries.CartView{
		UserID: userID,
		Items: []queries.CartItemView{
			{ID: uuid.New(), CourseID: uuid.New(), CourseName: "Distributed Systems", PriceMinor: 2000, AddedAt: time.Now().UTC().Truncate(time.Second)},
		},
		TotalMinor: 2000,
	}
}

func loaderOf(view *queries.CartView, calls *atomic.Int32) func(context.Context) (*queries.CartView, error) {
	return func(context.Context) (*queries.CartView, error) {
		calls.Add(1)
		return view, nil
	}
}

func TestCartCache_LoadFillsThenHits(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	userID := uuid.New()
	view := sampleView(userID)
	var calls atomic.Int32

	got, err := c.GetOrLoad(ctx, userID, loaderOf(view, &calls))
	require.NoError(t, err)
	assert.Equal(t, view, got)

	got, err = c.GetOrLoad(ctx, userID, loaderOf(view, &calls))
	require.NoError(t, err)
	assert.Equal(t, view, got)
	assert.Equal(t, int32(1), calls.Load())

	ttl := mr.TTL(cacheKey(userID))
	assert.GreaterOrEqual(t, ttl, 10*time.Minute)
	assert.Less(t, ttl, 11*time.Minute)
}

func TestCartCache_LoadErrorIsReturnedAndNotCached(t *testing.T) {
	c, mr := setupTestRedis(t)
	userID := uuid.New()
	dbDown := errors.New("db down")

	_, err := c.GetOrLoad(context.Background(), userID, func(context.Context) (*queries.CartView, error) {
		return nil, dbDown
	})

	assert.ErrorIs(t, err, dbDown)
	assert.False(t, mr.Exists(cacheKey(userID)))
}

func TestCartCache_Miss(t *testing.T) {
	c, _ := setupTestRedis(t)

	got, err := c.Get(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}

func TestCartCache_InvalidJSON(t *testing.T) {
	c, mr := setupTestRedis(t)
	userID := uuid.New()
	require.NoError(t, mr.Set(cacheKey(userID), "{not json"))

	_, err := c.Get(context.Background(), userID)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestCartCache_Invalidate(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()
	userID := uuid.New()
	var calls atomic.Int32
	_, err := c.GetOrLoad(ctx, userID, loaderOf(sampleView(userID), &calls))
	require.NoError(t, err)
	require.True(t, mr.Exists(cacheKey(userID)))

	require.NoError(t, c.Invalidate(ctx, userID))

	assert.False(t, mr.Exists(cacheKey(userID)))
	ver, err := mr.Get(versionKey(userID))
	require.NoError(t, err)
	assert.Equal(t, "1", ver)
	_, err = c.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

// cartRows stands in for the durable cart table.
type cartRows struct {
	mu   sync.Mutex
	view *queries.CartView
}

func (r *cartRows) read() *queries.CartView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

func (r *cartRows) write(v *queries.CartView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = v
}

func twoItemView(userID uuid.UUID) *queries.CartView {
	v := sampleView(userID)
	v.Items = append(v.Items, queries.CartItemView{
		ID: uuid.New(), CourseID: uuid.New(), CourseName: "Go Fundamentals", PriceMinor: 1500,
		AddedAt: time.Now().UTC().Truncate(time.Second),
	})
	v.TotalMinor = 3500
	return v
}

func TestCartCache_WriteDuringLoadIsNotOverwritten(t *testing.T) {
	t.Run("load that read before the write does not refill the cache", func(t *testing.T) {
		c, _ := setupTestRedis(t)
		ctx := context.Background()
		userID := uuid.New()
		rows := &cartRows{view: sampleView(userID)}

		entered := make(chan struct{})
		release := make(chan struct{})
		done := make(chan *queries.CartView, 1)
		go func() {
			got, err := c.GetOrLoad(ctx, userID, func(context.Context) (*queries.CartView, error) {
				snapshot := rows.read()
				close(entered)
				<-release
				return snapshot, nil
			})
			assert.NoError(t, err)
			done <- got
		}()
		<-entered

		rows.write(twoItemView(userID))
		require.NoError(t, c.Invalidate(ctx, userID))
		close(release)
		assert.Len(t, (<-done).Items, 1)

		got, err := c.GetOrLoad(ctx, userID, func(context.Context) (*queries.CartView, error) {
			return rows.read(), nil
		})
		require.NoError(t, err)
		assert.Len(t, got.Items, 2)

		cached, err := c.Get(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, cached.Items, 2)
	})

	t.Run("read after the write does not join the earlier load", func(t *testing.T) {
		c, _ := setupTestRedis(t)
		ctx := context.Background()
		userID := uuid.New()
		rows := &cartRows{view: sampleView(userID)}

		entered := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := c.GetOrLoad(ctx, userID, func(context.Context) (*queries.CartView, error) {
				snapshot := rows.read()
				close(entered)
				<-release
				return snapshot, nil
			})
			assert.NoError(t, err)
		}()
		<-entered

		rows.write(twoItemView(userID))
		require.NoError(t, c.Invalidate(ctx, userID))

		got, err := c.GetOrLoad(ctx, userID, func(context.Context) (*queries.CartView, error) {
			return rows.read(), nil
		})
		require.NoError(t, err)
		assert.Len(t, got.Items, 2)

		close(release)
		<-done

		cached, err := c.Get(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, cached.Items, 2)
	})
}

func TestCartCache_CancelledCallerDoesNotFailJoinedCallers(t *testing.T) {
	c, _ := setupTestRedis(t)
	userID := uuid.New()
	view := sampleView(userID)
	var calls atomic.Int32

	entered := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (*queries.CartView, error) {
		calls.Add(1)
		close(entered)
		select {
		case <-release:
			return view, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.GetOrLoad(firstCtx, userID, load)
		firstErr <- err
	}()
	<-entered

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	type result struct {
		view *queries.CartView
		err  error
	}
	second := make(chan result, 1)
	go func() {
		got, err := c.GetOrLoad(context.Background(), userID, func(context.Context) (*queries.CartView, error) {
			calls.Add(1)
			return view, nil
		})
		second <- result{got, err}
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)

	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, view, res.view)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCartCache_LoadTimeout(t *testing.T) {
	c, _ := setupTestRedis(t)
	c.loadTimeout = 20 * time.Millisecond

	_, err := c.GetOrLoad(context.Background(), uuid.New(), func(ctx context.Context) (*queries.CartView, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCartCache_ServerDown(t *testing.T) {
	c, mr := setupTestRedis(t)
	mr.Close()

	_, err := c.Get(context.Background(), uuid.New())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestCartCache_ServerDownFallsBackToLoad(t *testing.T) {
	c, mr := setupTestRedis(t)
	userID := uuid.New()
	view := sampleView(userID)
	var calls atomic.Int32
	mr.Close()

	got, err := c.GetOrLoad(context.Background(), userID, loaderOf(view, &calls))

	require.NoError(t, err)
	assert.Equal(t, view, got)
	assert.Equal(t, int32(1), calls.Load())
}
