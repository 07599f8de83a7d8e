package discount

import (
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/money"
)

// DiscountCode is read-only for the checkout pipeline. It has no expiry; only IsActive gates it.
type DiscountCode struct {
	code     Code
	rule     Rule
	isActive bool
}

func NewDiscountCode(code string, rule Rule, isActive bool) (*DiscountCode, error) {
	c, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	return &DiscountCode{code: c, rule: rule, isActive: isActive}, nil
}

func (d *DiscountCode) Code() Code     { return d.code }
func (d *DiscountCode) Rule() Rule     { return d.rule }
func (d *DiscountCode) IsActive() bool { return d.isActive }

// Applied is the discount frozen onto an order.
type Applied struct {
	Code   Code
	Amount money.Minor
}

// None is used when no code was supplied.
var None = Applied{}

func (a Applied) IsZero() bool { return a.Code == "" }

func (d *DiscountCode) Apply(subtotal money.Minor) (Applied, error) {
	if !d.isActive {
		return Applied{}, errs.ErrInvalidDiscountCode
	}
	return Applied{Code: d.code, Amount: d.rule.AmountOff(subtotal)}, nil
}
