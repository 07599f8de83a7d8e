//go:build unit

package cart_test

import (
	"testing"
	"time"

	"learnhub-checkout/internal/domain/cart"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	t.Run("snapshots price", func(t *testing.T) {
		it, err := cart.NewItem(userID, uuid.New(), " Go Basics ", 2000, now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, it.ID())
		assert.Equal(t, "Go Basics", it.CourseName())
		assert.Equal(t, money.Minor(2000), it.Price())
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := cart.NewItem(userID, uuid.New(), "Go", -1, now)
		assert.ErrorIs(t, err, money.ErrNegativeAmount)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := cart.NewItem(userID, uuid.New(), "  ", 100, now)
		assert.ErrorIs(t, err, cart.ErrMissingCourseName)
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := cart.NewItem(uuid.Nil, uuid.New(), "Go", 100, now)
		assert.ErrorIs(t, err, cart.ErrMissingOwner)
	})
}

func TestCart(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	courseA, courseB, courseC := uuid.New(), uuid.New(), uuid.New()
	items := []*cart.Item{
		cart.ReconstructItem(uuid.New(), userID, courseA, "A", 2000, now),
		cart.ReconstructItem(uuid.New(), userID, courseB, "B", 1500, now),
	}
	c := cart.NewCart(userID, items)

	t.Run("total", func(t *testing.T) {
		assert.Equal(t, money.Minor(3500), c.Total())
	})

	t.Run("duplicate add", func(t *testing.T) {
		assert.True(t, errs.Is(c.CanAdd(courseA), errs.ErrCourseAlreadyInCart))
		assert.NoError(t, c.CanAdd(courseC))
	})

	t.Run("select keeps requested order and drops repeats", func(t *testing.T) {
		got, err := c.Select([]uuid.UUID{courseB, courseA, courseB})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, courseB, got[0].CourseID())
		assert.Equal(t, courseA, got[1].CourseID())
	})

	t.Run("select unknown course", func(t *testing.T) {
		_, err := c.Select([]uuid.UUID{courseC})
		assert.True(t, errs.Is(err, errs.ErrCartItemNotFound))
	})

	t.Run("select nothing", func(t *testing.T) {
		_, err := c.Select(nil)
		assert.True(t, errs.Is(err, errs.ErrEmptyCart))
	})
}
