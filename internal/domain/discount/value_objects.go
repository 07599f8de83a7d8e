package discount

import (
	"errors"
	"regexp"
	"strings"

	"learnhub-checkout/internal/pkg/money"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCodeFormat = errors.New("invalid discount code format")
	ErrInvalidRule       = errors.New("discount must be either a percentage or a flat amount")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9_-]{2,32}$`)

// Code is always stored and compared in upper case.
type Code string

func NewCode(raw string) (Code, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCodeFormat
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// Rule is exactly one of a percentage or a flat amount.
type Rule struct {
	percent *money.Percent
	flat    *money.Minor
}

func NewPercentRule(p decimal.Decimal) (Rule, error) {
	pct, err := money.NewPercent(p)
	if err != nil {
		return Rule{}, err
	}
	return Rule{percent: &pct}, nil
}

func NewFlatRule(amount int64) (Rule, error) {
	m, err := money.NewMinor(amount)
	if err != nil {
		return Rule{}, err
	}
	return Rule{flat: &m}, nil
}

func NewRule(percent *decimal.Decimal, flatAmount *int64) (Rule, error) {
	switch {
	case percent != nil && flatAmount != nil, percent == nil && flatAmount == nil:
		return Rule{}, ErrInvalidRule
	case percent != nil:
		return NewPercentRule(*percent)
	default:
		return NewFlatRule(*flatAmount)
	}
}

func (r Rule) IsPercent() bool { return r.percent != nil }

func (r Rule) Percent() *money.Percent { return r.percent }

func (r Rule) Flat() *money.Minor { return r.flat }

// AmountOff is clamped to [0, subtotal] so a discount never makes the total negative.
func (r Rule) AmountOff(subtotal money.Minor) money.Minor {
	var off money.Minor
	if r.percent != nil {
		off = r.percent.Of(subtotal)
	} else if r.flat != nil {
		off = *r.flat
	}
	return off.Clamp(subtotal)
}
