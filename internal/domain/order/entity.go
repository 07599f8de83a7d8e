package order

import (
	"errors"
	"fmt"
	"time"

	"learnhub-checkout/internal/domain/discount"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/money"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrDuplicateCourse   = errors.New("course appears twice in order")
	ErrMissingSession    = errors.New("gateway session id is required")
	ErrMissingPaymentID  = errors.New("payment id is required")
)

type Order struct {
	id               uuid.UUID
	userID           uuid.UUID
	items            []LineItem
	subtotal         money.Minor
	discountAmount   money.Minor
	amount           money.Minor
	discountCode     discount.Code
	currency         string
	status           Status
	paymentMode      PaymentMode
	gatewaySessionID string
	paymentID        string
	failureReason    FailureReason
	customer         CustomerInfo
	createdAt        time.Time
	updatedAt        time.Time
	verifiedAt       *time.Time
	completedAt      *time.Time
}

// NewOrder freezes prices and computes amount = sum(prices) - discount. The
// amount is never recomputed afterwards.
func NewOrder(
	userID uuid.UUID,
	items []LineItem,
	applied discount.Applied,
	customer CustomerInfo,
	currency string,
	mode PaymentMode,
	now time.Time,
) (*Order, error) {
	if len(items) == 0 {
		return nil, errs.ErrEmptyCart
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	prices := make([]money.Minor, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.CourseID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCourse, it.CourseID)
		}
		if it.Price < 0 {
			return nil, money.ErrNegativeAmount
		}
		seen[it.CourseID] = struct{}{}
		prices = append(prices, it.Price)
	}

	subtotal := money.Sum(prices...)
	discountAmount := applied.Amount.Clamp(subtotal)

	snapshot := make([]LineItem, len(items))
	copy(snapshot, items)

	return &Order{
		id:             uuid.New(),
		userID:         userID,
		items:          snapshot,
		subtotal:       subtotal,
		discountAmount: discountAmount,
		amount:         subtotal.Sub(discountAmount),
		discountCode:   applied.Code,
		currency:       currency,
		status:         StatusCreated,
		paymentMode:    mode,
		customer:       customer,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

type ReconstructParams struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Items            []LineItem
	Subtotal         int64
	DiscountAmount   int64
	Amount           int64
	DiscountCode     string
	Currency         string
	Status           Status
	PaymentMode      PaymentMode
	GatewaySessionID string
	PaymentID        string
	FailureReason    string
	Customer         CustomerInfo
	CreatedAt        time.Time
	UpdatedAt        time.Time
	VerifiedAt       *time.Time
	CompletedAt      *time.Time
}

func Reconstruct(p ReconstructParams) *Order {
	return &Order{
		id:               p.ID,
		userID:           p.UserID,
		items:            p.Items,
		subtotal:         money.Minor(p.Subtotal),
		discountAmount:   money.Minor(p.DiscountAmount),
		amount:           money.Minor(p.Amount),
		discountCode:     discount.Code(p.DiscountCode),
		currency:         p.Currency,
		status:           p.Status,
		paymentMode:      p.PaymentMode,
		gatewaySessionID: p.GatewaySessionID,
		paymentID:        p.PaymentID,
		failureReason:    FailureReason(p.FailureReason),
		customer:         p.Customer,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
		verifiedAt:       p.VerifiedAt,
		completedAt:      p.CompletedAt,
	}
}

func (o *Order) transition(next Status, now time.Time) error {
	if !o.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.status, next)
	}
	o.status = next
	o.updatedAt = now
	return nil
}

// AttachGatewaySession records the processor order id and opens the order for payment.
func (o *Order) AttachGatewaySession(sessionID string, now time.Time) error {
	if sessionID == "" {
		return ErrMissingSession
	}
	if err := o.transition(StatusPending, now); err != nil {
		return err
	}
	o.gatewaySessionID = sessionID
	return nil
}

func (o *Order) MarkFailed(reason FailureReason, now time.Time) error {
	if err := o.transition(StatusFailed, now); err != nil {
		return err
	}
	o.failureReason = reason
	return nil
}

// MarkVerified trusts the payment. Only demo orders may skip PENDING.
func (o *Order) MarkVerified(paymentID string, now time.Time) error {
	if paymentID == "" {
		return ErrMissingPaymentID
	}
	if o.status == StatusCreated && o.paymentMode != PaymentModeDemo {
		return fmt.Errorf("%w: %s -> %s without gateway session", ErrInvalidTransition, o.status, StatusVerified)
	}
	if err := o.transition(StatusVerified, now); err != nil {
		return err
	}
	o.paymentID = paymentID
	o.verifiedAt = &now
	return nil
}

func (o *Order) MarkProvisioned(now time.Time) error {
	if err := o.transition(StatusProvisioned, now); err != nil {
		return err
	}
	o.completedAt = &now
	return nil
}

func (o *Order) Expire(now time.Time) error {
	return o.transition(StatusExpired, now)
}

// CheckExpected re-derives the amount from the persisted snapshot and compares
// the client's claimed items against it. Any difference is ErrAmountMismatch.
func (o *Order) CheckExpected(expected []ExpectedItem) error {
	if len(expected) != len(o.items) {
		return errs.Wrapf(errs.ErrAmountMismatch, "expected %d items, order has %d", len(expected), len(o.items))
	}

	snapshot := make(map[uuid.UUID]money.Minor, len(o.items))
	for _, it := range o.items {
		snapshot[it.CourseID] = it.Price
	}
	for _, e := range expected {
		price, ok := snapshot[e.CourseID]
		if !ok {
			return errs.Wrapf(errs.ErrAmountMismatch, "course %s not in order", e.CourseID)
		}
		if price != e.Price {
			return errs.Wrapf(errs.ErrAmountMismatch, "course %s price %d != %d", e.CourseID, e.Price, price)
		}
		delete(snapshot, e.CourseID)
	}

	if o.SnapshotTotal().Sub(o.discountAmount) != o.amount {
		return errs.Wrapf(errs.ErrAmountMismatch, "snapshot total does not match amount %d", o.amount)
	}
	return nil
}

func (o *Order) SnapshotTotal() money.Minor {
	var total money.Minor
	for _, it := range o.items {
		total += it.Price
	}
	return total
}

func (o *Order) IsOwnedBy(userID uuid.UUID) bool { return o.userID == userID }

func (o *Order) CourseIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(o.items))
	for i, it := range o.items {
		ids[i] = it.CourseID
	}
	return ids
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) UserID() uuid.UUID            { return o.userID }
func (o *Order) Items() []LineItem            { return o.items }
func (o *Order) Subtotal() money.Minor        { return o.subtotal }
func (o *Order) DiscountAmount() money.Minor  { return o.discountAmount }
func (o *Order) Amount() money.Minor          { return o.amount }
func (o *Order) DiscountCode() discount.Code  { return o.discountCode }
func (o *Order) Currency() string             { return o.currency }
func (o *Order) Status() Status               { return o.status }
func (o *Order) PaymentMode() PaymentMode     { return o.paymentMode }
func (o *Order) GatewaySessionID() string     { return o.gatewaySessionID }
func (o *Order) PaymentID() string            { return o.paymentID }
func (o *Order) FailureReason() FailureReason { return o.failureReason }
func (o *Order) Customer() CustomerInfo       { return o.customer }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
func (o *Order) VerifiedAt() *time.Time       { return o.verifiedAt }
func (o *Order) CompletedAt() *time.Time      { return o.completedAt }
