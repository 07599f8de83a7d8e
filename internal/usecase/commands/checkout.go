package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/domain/payment"
	"learnhub-checkout/internal/pkg/clock"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/metrics"
	"learnhub-checkout/internal/pkg/money"
	"learnhub-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=checkout.go -destination=../../../tests/mock/commands/checkout_mock.go -package=commandsmock

const checkoutEndpoint = "POST /api/checkout/orders"

type CheckoutLine struct {
	CourseID uuid.UUID `json:"course_id"`
	Price    int64     `json:"price"`
	Name     string    `json:"name"`
}

type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type CreateOrderRequest struct {
	UserID    *uuid.UUID     `json:"user_id,omitempty"`
	Amount    *int64         `json:"amount,omitempty"`
	Courses   []CheckoutLine `json:"courses"`
	Customer  CustomerInput  `json:"customer"`
	PromoCode string         `json:"promo_code"`
}

type CheckoutResult struct {
	OrderID          uuid.UUID
	GatewayOrderID   string
	GatewayPublicKey string
	AmountMinor      int64
	Currency         string
	Status           order.Status
	PaymentMode      order.PaymentMode
	Customer         order.CustomerInfo
	Provision        *ProvisionResult
	IsReplayed       bool
}

type CheckoutCommands interface {
	CreateOrder(ctx context.Context, session shared.Session, req CreateOrderRequest, idempotencyKey uuid.UUID) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow            shared.UnitOfWork
	gateway        PaymentGateway
	verifier       VerificationCommands
	payments       PaymentSettings
	idempotencyTTL time.Duration
	metrics        *metrics.Pipeline
	clock          clock.Clock
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	verifier VerificationCommands,
	payments PaymentSettings,
	idempotencyTTL time.Duration,
	m *metrics.Pipeline,
	clk clock.Clock,
) CheckoutCommands {
	if idempotencyTTL <= 0 {
		idempotencyTTL = 24 * time.Hour
	}
	return &checkoutUseCaseImpl{
		uow:            uow,
		gateway:        gateway,
		verifier:       verifier,
		payments:       payments,
		idempotencyTTL: idempotencyTTL,
		metrics:        m,
		clock:          clk,
	}
}

func (uc *checkoutUseCaseImpl) CreateOrder(
	ctx context.Context,
	session shared.Session,
	req CreateOrderRequest,
	idempotencyKey uuid.UUID,
) (*CheckoutResult, error) {
	if !session.Valid() {
		return nil, errs.ErrUnauthenticated
	}
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}
	if req.UserID != nil && *req.UserID != session.UserID {
		return nil, errs.ErrForbidden
	}
	if len(req.Courses) == 0 {
		return nil, errs.ErrEmptyCart
	}
	customer, err := order.NewCustomerInfo(req.Customer.Name, req.Customer.Email, req.Customer.Contact)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	mode, err := uc.payments.Mode()
	if err != nil {
		return nil, err
	}

	requestHash := calculateRequestHash(req)
	now := uc.clock.Now()

	var created, replayed *order.Order
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, replayed = nil, nil

		existing, err := uc.claimIdempotencyKey(ctx, tx, idempotencyKey, session.UserID, requestHash, now)
		if err != nil {
			return err
		}
		if existing != nil {
			replayed = existing
			return nil
		}

		o, err := uc.buildOrder(ctx, tx, session.UserID, req, customer, mode, now)
		if err != nil {
			return err
		}
		if err := tx.Orders().Create(ctx, tx.DB(), o); err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, session.UserID, o.ID()); err != nil {
			return errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		if err := writeOrderEvent(ctx, tx, shared.EventOrderCreated, newOrderEventPayload(o, now)); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if replayed != nil {
		slog.Info("checkout replayed", "order_id", replayed.ID(), "user_id", session.UserID, "idempotency_key", idempotencyKey)
		result := uc.resultFor(replayed)
		result.IsReplayed = true
		return result, nil
	}

	uc.metrics.OrderCreated(mode.String())
	slog.Info("order created",
		"order_id", created.ID(),
		"user_id", session.UserID,
		"amount", created.Amount().Int64(),
		"currency", created.Currency(),
		"payment_mode", mode,
	)

	if mode == order.PaymentModeDemo {
		return uc.completeDemo(ctx, session, created)
	}
	return uc.openGatewaySession(ctx, created)
}

// claimIdempotencyKey returns the previously created order when the request is a replay.
func (uc *checkoutUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	requestHash string,
	now time.Time,
) (*order.Order, error) {
	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, checkoutEndpoint, requestHash, now.Add(uc.idempotencyTTL))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if existing.RequestHash != requestHash {
		return nil, errs.ErrDuplicateCheckout
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultOrderID == nil {
			return nil, errs.New("completed request missing result order ID")
		}
		o, err := tx.Orders().Get(ctx, tx.DB(), *existing.ResultOrderID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
		}
		return o, nil
	case shared.IdempotencyProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

// buildOrder prices the order from the durable cart rows, not from the client's numbers.
func (uc *checkoutUseCaseImpl) buildOrder(
	ctx context.Context,
	tx shared.Tx,
	userID uuid.UUID,
	req CreateOrderRequest,
	customer order.CustomerInfo,
	mode order.PaymentMode,
	now time.Time,
) (*order.Order, error) {
	courseIDs := make([]uuid.UUID, 0, len(req.Courses))
	seen := make(map[uuid.UUID]struct{}, len(req.Courses))
	for _, line := range req.Courses {
		if _, dup := seen[line.CourseID]; dup {
			return nil, errs.Mark(errs.Wrapf(order.ErrDuplicateCourse, "course %s", line.CourseID), errs.ErrDomainValidation)
		}
		seen[line.CourseID] = struct{}{}
		courseIDs = append(courseIDs, line.CourseID)
	}

	current, err := tx.Reads().CartByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPersistenceFailure)
	}
	lines, err := current.Select(courseIDs)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, len(lines))
	prices := make([]money.Minor, len(lines))
	for i, line := range lines {
		claimed := money.Minor(req.Courses[i].Price)
		if claimed != line.Price() {
			return nil, errs.Wrapf(errs.ErrAmountMismatch, "course %s price %d, cart has %d", line.CourseID(), claimed, line.Price())
		}
		items[i] = order.LineItem{
			CourseID:   line.CourseID(),
			CourseName: line.CourseName(),
			Price:      line.Price(),
		}
		prices[i] = line.Price()
	}

	applied, err := applyDiscount(ctx, tx.Reads(), req.PromoCode, money.Sum(prices...))
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(userID, items, applied, customer, uc.payments.Currency, mode, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if req.Amount != nil && money.Minor(*req.Amount) != o.Amount() {
		return nil, errs.Wrapf(errs.ErrAmountMismatch, "client amount %d, computed %d", *req.Amount, o.Amount())
	}
	// Processors reject zero-amount orders.
	if mode == order.PaymentModeGateway && o.Amount() == 0 {
		return nil, errs.WithDetail(
			errs.Wrapf(errs.ErrZeroAmountCheckout, "subtotal %d, discount %d", o.Subtotal(), o.DiscountAmount()),
			"discount covers the full price",
		)
	}
	return o, nil
}

func (uc *checkoutUseCaseImpl) openGatewaySession(ctx context.Context, o *order.Order) (*CheckoutResult, error) {
	session, err := uc.gateway.CreateSession(ctx, payment.SessionRequest{
		OrderID:  o.ID(),
		Amount:   o.Amount(),
		Currency: o.Currency(),
	})
	if err != nil {
		slog.Error("gateway session creation failed",
			"order_id", o.ID(),
			"user_id", o.UserID(),
			"payment_mode", o.PaymentMode(),
			"error", err,
		)
		uc.markSessionFailed(ctx, o.ID())
		return nil, errs.Mark(err, errs.ErrGatewayUnavailable)
	}

	var pending *order.Order
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		pending = nil
		locked, err := tx.Orders().GetForUpdate(ctx, tx.DB(), o.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if err := locked.AttachGatewaySession(session.GatewayOrderID, uc.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		if err := tx.Orders().UpdateState(ctx, tx.DB(), locked); err != nil {
			return errs.Mark(err, errs.ErrPersistenceFailure)
		}
		pending = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("gateway session opened",
		"order_id", pending.ID(),
		"user_id", pending.UserID(),
		"gateway_order_id", session.GatewayOrderID,
		"payment_mode", pending.PaymentMode(),
	)
	return uc.resultFor(pending), nil
}

func (uc *checkoutUseCaseImpl) markSessionFailed(ctx context.Context, orderID uuid.UUID) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Orders().GetForUpdate(ctx, tx.DB(), orderID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if err := locked.MarkFailed(order.ReasonGatewaySession, now); err != nil {
			return err
		}
		if err := tx.Orders().UpdateState(ctx, tx.DB(), locked); err != nil {
			return err
		}
		return writeOrderEvent(ctx, tx, shared.EventOrderFailed, newOrderEventPayload(locked, now))
	})
	if err != nil {
		slog.Error("failed to mark order failed after gateway error", "order_id", orderID, "error", err)
	}
}

func (uc *checkoutUseCaseImpl) completeDemo(ctx context.Context, session shared.Session, o *order.Order) (*CheckoutResult, error) {
	verified, err := uc.verifier.VerifyDemo(ctx, session, o.ID())
	if err != nil {
		return nil, err
	}
	result := uc.resultFor(o)
	result.Status = verified.Status
	result.Provision = verified.Provision
	return result, nil
}

func (uc *checkoutUseCaseImpl) resultFor(o *order.Order) *CheckoutResult {
	result := &CheckoutResult{
		OrderID:     o.ID(),
		AmountMinor: o.Amount().Int64(),
		Currency:    o.Currency(),
		Status:      o.Status(),
		PaymentMode: o.PaymentMode(),
		Customer:    o.Customer(),
	}
	if o.PaymentMode() == order.PaymentModeGateway {
		result.GatewayOrderID = o.GatewaySessionID()
		result.GatewayPublicKey = uc.payments.KeyID
	}
	return result
}

func calculateRequestHash(req CreateOrderRequest) string {
	data, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
