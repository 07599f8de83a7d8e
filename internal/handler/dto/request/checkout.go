package request

import (
	"encoding/json"
	"strings"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/pkg/money"
	"learnhub-checkout/internal/pkg/patch"
	"learnhub-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutCourse struct {
	ID    uuid.UUID `json:"id" binding:"required"`
	Price int64     `json:"price" binding:"gte=0"`
	Name  string    `json:"name"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type CreateOrderRequest struct {
	UserID       *uuid.UUID       `json:"userId,omitempty"`
	Amount       *int64           `json:"amount,omitempty"`
	Courses      []CheckoutCourse `json:"courses" binding:"dive"`
	CustomerInfo CustomerInfo     `json:"customerInfo"`
	PromoCode    *string          `json:"promoCode,omitempty"`
}

func (r CreateOrderRequest) GetPromoCode() string {
	return strings.TrimSpace(patch.Coalesce(r.PromoCode, ""))
}

func (r CreateOrderRequest) ToCommand() commands.CreateOrderRequest {
	lines := make([]commands.CheckoutLine, len(r.Courses))
	for i, c := range r.Courses {
		lines[i] = commands.CheckoutLine{CourseID: c.ID, Price: c.Price, Name: strings.TrimSpace(c.Name)}
	}
	return commands.CreateOrderRequest{
		UserID:  r.UserID,
		Amount:  r.Amount,
		Courses: lines,
		Customer: commands.CustomerInput{
			Name:    r.CustomerInfo.Name,
			Email:   r.CustomerInfo.Email,
			Contact: r.CustomerInfo.Contact,
		},
		PromoCode: r.GetPromoCode(),
	}
}

// ExpectedCourse is what the client believes it is paying for.
type ExpectedCourse struct {
	ID    uuid.UUID `json:"id" binding:"required"`
	Price int64     `json:"price" binding:"gte=0"`
}

func toExpectedItems(courses []ExpectedCourse) []order.ExpectedItem {
	items := make([]order.ExpectedItem, len(courses))
	for i, c := range courses {
		items[i] = order.ExpectedItem{CourseID: c.ID, Price: money.Minor(c.Price)}
	}
	return items
}

type VerifyPaymentRequest struct {
	OrderID        uuid.UUID        `json:"orderId" binding:"required"`
	GatewayOrderID string           `json:"gatewayOrderId" binding:"required"`
	PaymentID      string           `json:"paymentId" binding:"required"`
	Signature      string           `json:"signature" binding:"required"`
	UserID         *uuid.UUID       `json:"userId,omitempty"`
	Courses        []ExpectedCourse `json:"courses" binding:"required,dive"`
}

func (r VerifyPaymentRequest) ToCommand() commands.VerifyRequest {
	return commands.VerifyRequest{
		OrderID:        r.OrderID,
		GatewayOrderID: strings.TrimSpace(r.GatewayOrderID),
		PaymentID:      strings.TrimSpace(r.PaymentID),
		Signature:      strings.TrimSpace(r.Signature),
		UserID:         r.UserID,
		Courses:        toExpectedItems(r.Courses),
	}
}

// PaymentOutcomeRequest carries the widget result verbatim; it is decoded by payment.DecodeOutcome.
type PaymentOutcomeRequest struct {
	Outcome json.RawMessage  `json:"outcome" binding:"required"`
	Courses []ExpectedCourse `json:"courses" binding:"dive"`
}

func (r PaymentOutcomeRequest) ExpectedItems() []order.ExpectedItem {
	return toExpectedItems(r.Courses)
}
