// Package money keeps prices in integer minor units (paise, cents) and only
// uses decimals at the edges where percentages or major units are involved.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrInvalidPercent = errors.New("percent must be between 0 and 100")
)

const minorPerMajor = 100

// Minor is an amount in the currency's minor unit.
type Minor int64

func NewMinor(v int64) (Minor, error) {
	if v < 0 {
		return 0, ErrNegativeAmount
	}
	return Minor(v), nil
}

func (m Minor) Int64() int64 { return int64(m) }

func (m Minor) Major() decimal.Decimal {
	return decimal.New(int64(m), 0).Div(decimal.New(minorPerMajor, 0))
}

func (m Minor) String() string {
	return m.Major().StringFixed(2)
}

// Sub never goes below zero.
func (m Minor) Sub(o Minor) Minor {
	if o >= m {
		return 0
	}
	return m - o
}

// Clamp bounds m to [0, max].
func (m Minor) Clamp(max Minor) Minor {
	if m < 0 {
		return 0
	}
	if m > max {
		return max
	}
	return m
}

func Sum(values ...Minor) Minor {
	var total Minor
	for _, v := range values {
		total += v
	}
	return total
}

// FromMajor converts a major-unit decimal (e.g. 20.00) into minor units, rounding half away from zero.
func FromMajor(d decimal.Decimal) (Minor, error) {
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	return Minor(d.Mul(decimal.New(minorPerMajor, 0)).Round(0).IntPart()), nil
}

// Percent is a percentage in [0, 100] with up to two decimal places.
type Percent struct {
	value decimal.Decimal
}

func NewPercent(d decimal.Decimal) (Percent, error) {
	if d.IsNegative() || d.GreaterThan(decimal.New(100, 0)) {
		return Percent{}, fmt.Errorf("%w: %s", ErrInvalidPercent, d.String())
	}
	return Percent{value: d}, nil
}

func (p Percent) Decimal() decimal.Decimal { return p.value }

// Of returns floor(base * p / 100).
func (p Percent) Of(base Minor) Minor {
	amount := decimal.New(int64(base), 0).Mul(p.value).Div(decimal.New(100, 0)).Floor()
	return Minor(amount.IntPart())
}
