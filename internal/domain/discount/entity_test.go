//go:build unit

package discount_test

import (
	"testing"

	"learnhub-checkout/internal/domain/discount"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(t *testing.T, amount int64) discount.Rule {
	t.Helper()
	r, err := discount.NewFlatRule(amount)
	require.NoError(t, err)
	return r
}

func percent(t *testing.T, p string) discount.Rule {
	t.Helper()
	r, err := discount.NewPercentRule(decimal.RequireFromString(p))
	require.NoError(t, err)
	return r
}

func TestDiscountCode_Apply(t *testing.T) {
	tests := []struct {
		name     string
		rule     func(t *testing.T) discount.Rule
		subtotal money.Minor
		want     money.Minor
	}{
		{
			name:     "flat amount",
			rule:     func(t *testing.T) discount.Rule { return flat(t, 500) },
			subtotal: 2000,
			want:     500,
		},
		{
			name:     "flat amount larger than subtotal is clamped",
			rule:     func(t *testing.T) discount.Rule { return flat(t, 5000) },
			subtotal: 2000,
			want:     2000,
		},
		{
			name:     "percent",
			rule:     func(t *testing.T) discount.Rule { return percent(t, "25") },
			subtotal: 2000,
			want:     500,
		},
		{
			name:     "percent floors",
			rule:     func(t *testing.T) discount.Rule { return percent(t, "33.33") },
			subtotal: 1000,
			want:     333,
		},
		{
			name:     "zero subtotal",
			rule:     func(t *testing.T) discount.Rule { return flat(t, 500) },
			subtotal: 0,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := discount.NewDiscountCode("save500", tt.rule(t), true)
			require.NoError(t, err)

			applied, err := code.Apply(tt.subtotal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, applied.Amount)
			assert.Equal(t, discount.Code("SAVE500"), applied.Code)
			assert.GreaterOrEqual(t, int64(tt.subtotal.Sub(applied.Amount)), int64(0))
		})
	}
}

func TestDiscountCode_Inactive(t *testing.T) {
	code, err := discount.NewDiscountCode("SAVE500", flat(t, 500), false)
	require.NoError(t, err)

	_, err = code.Apply(2000)
	assert.ErrorIs(t, err, errs.ErrInvalidDiscountCode)
}

func TestNewCode(t *testing.T) {
	t.Run("normalises to upper case", func(t *testing.T) {
		c, err := discount.NewCode("  save500 ")
		require.NoError(t, err)
		assert.Equal(t, "SAVE500", c.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := discount.NewCode("save 500!")
		assert.ErrorIs(t, err, discount.ErrInvalidCodeFormat)
	})
}

func TestNewRule(t *testing.T) {
	p := decimal.RequireFromString("10")
	amount := int64(100)

	_, err := discount.NewRule(&p, &amount)
	assert.ErrorIs(t, err, discount.ErrInvalidRule)

	_, err = discount.NewRule(nil, nil)
	assert.ErrorIs(t, err, discount.ErrInvalidRule)

	r, err := discount.NewRule(&p, nil)
	require.NoError(t, err)
	assert.True(t, r.IsPercent())

	r, err = discount.NewRule(nil, &amount)
	require.NoError(t, err)
	assert.False(t, r.IsPercent())
}
