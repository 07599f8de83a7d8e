//go:build unit || e2e

package builder

import (
	"time"

	"learnhub-checkout/internal/domain/cart"
	"learnhub-checkout/internal/domain/discount"
	"learnhub-checkout/internal/domain/order"
	reqdto "learnhub-checkout/internal/handler/dto/request"
	"learnhub-checkout/internal/pkg/money"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	UserID   uuid.UUID
	Items    []order.LineItem
	Applied  discount.Applied
	Customer order.CustomerInfo
	Currency string
	Mode     order.PaymentMode
	Now      time.Time
}

// NewOrderBuilder starts from two courses priced 2000 and 1500 with no discount.
func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		UserID: uuid.New(),
		Items: []order.LineItem{
			{CourseID: uuid.New(), CourseName: "Go Fundamentals", Price: 2000},
			{CourseID: uuid.New(), CourseName: "Distributed Systems", Price: 1500},
		},
		Applied:  discount.None,
		Customer: order.RestoreCustomerInfo("Ada Lovelace", "ada@example.com", "+910000000000"),
		Currency: "INR",
		Mode:     order.PaymentModeGateway,
		Now:      time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) WithUser(userID uuid.UUID) *OrderBuilder {
	b.UserID = userID
	return b
}

func (b *OrderBuilder) WithDiscount(code string, amount int64) *OrderBuilder {
	b.Applied = discount.Applied{Code: discount.Code(code), Amount: money.Minor(amount)}
	return b
}

func (b *OrderBuilder) WithPaymentMode(mode order.PaymentMode) *OrderBuilder {
	b.Mode = mode
	return b
}

func (b *OrderBuilder) WithSingleCourse(price int64) *OrderBuilder {
	b.Items = []order.LineItem{{CourseID: uuid.New(), CourseName: "Go Fundamentals", Price: money.Minor(price)}}
	return b
}

// Build methods
func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	return order.NewOrder(b.UserID, b.Items, b.Applied, b.Customer, b.Currency, b.Mode, b.Now)
}

// BuildPending is a gateway order with an open processor session.
func (b *OrderBuilder) BuildPending(sessionID string) (*order.Order, error) {
	o, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	if err := o.AttachGatewaySession(sessionID, b.Now); err != nil {
		return nil, err
	}
	return o, nil
}

func (b *OrderBuilder) ExpectedItems() []order.ExpectedItem {
	out := make([]order.ExpectedItem, len(b.Items))
	for i, it := range b.Items {
		out[i] = order.ExpectedItem{CourseID: it.CourseID, Price: it.Price}
	}
	return out
}

func (b *OrderBuilder) CourseIDs() []uuid.UUID {
	out := make([]uuid.UUID, len(b.Items))
	for i, it := range b.Items {
		out[i] = it.CourseID
	}
	return out
}

func (b *OrderBuilder) Subtotal() int64 {
	var total int64
	for _, it := range b.Items {
		total += it.Price.Int64()
	}
	return total
}

// CartItems mirrors the order lines as the cart rows they were frozen from.
func (b *OrderBuilder) CartItems() []*cart.Item {
	out := make([]*cart.Item, len(b.Items))
	for i, it := range b.Items {
		out[i] = cart.ReconstructItem(uuid.New(), b.UserID, it.CourseID, it.CourseName, it.Price.Int64(), b.Now)
	}
	return out
}

func (b *OrderBuilder) BuildCart() *cart.Cart {
	return cart.NewCart(b.UserID, b.CartItems())
}

func (b *OrderBuilder) ReconstructParams(o *order.Order) order.ReconstructParams {
	return order.ReconstructParams{
		ID:               o.ID(),
		UserID:           o.UserID(),
		Items:            o.Items(),
		Subtotal:         o.Subtotal().Int64(),
		DiscountAmount:   o.DiscountAmount().Int64(),
		Amount:           o.Amount().Int64(),
		DiscountCode:     o.DiscountCode().String(),
		Currency:         o.Currency(),
		Status:           o.Status(),
		PaymentMode:      o.PaymentMode(),
		GatewaySessionID: o.GatewaySessionID(),
		PaymentID:        o.PaymentID(),
		FailureReason:    string(o.FailureReason()),
		Customer:         o.Customer(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
		VerifiedAt:       o.VerifiedAt(),
		CompletedAt:      o.CompletedAt(),
	}
}

func (b *OrderBuilder) BuildCheckoutRequest() commands.CreateOrderRequest {
	lines := make([]commands.CheckoutLine, len(b.Items))
	for i, it := range b.Items {
		lines[i] = commands.CheckoutLine{CourseID: it.CourseID, Price: it.Price.Int64(), Name: it.CourseName}
	}
	return commands.CreateOrderRequest{
		Courses: lines,
		Customer: commands.CustomerInput{
			Name:    b.Customer.Name(),
			Email:   b.Customer.Email(),
			Contact: b.Customer.Contact(),
		},
		PromoCode: b.Applied.Code.String(),
	}
}

func (b *OrderBuilder) BuildCreateOrderDTO() reqdto.CreateOrderRequest {
	courses := make([]reqdto.CheckoutCourse, len(b.Items))
	for i, it := range b.Items {
		courses[i] = reqdto.CheckoutCourse{ID: it.CourseID, Price: it.Price.Int64(), Name: it.CourseName}
	}
	req := reqdto.CreateOrderRequest{
		Courses: courses,
		CustomerInfo: reqdto.CustomerInfo{
			Name:    b.Customer.Name(),
			Email:   b.Customer.Email(),
			Contact: b.Customer.Contact(),
		},
	}
	if !b.Applied.IsZero() {
		code := b.Applied.Code.String()
		req.PromoCode = &code
	}
	return req
}

func (b *OrderBuilder) BuildView(o *order.Order) *queries.OrderView {
	items := make([]queries.OrderItemView, len(o.Items()))
	for i, it := range o.Items() {
		items[i] = queries.OrderItemView{CourseID: it.CourseID, CourseName: it.CourseName, PriceMinor: it.Price.Int64()}
	}
	return &queries.OrderView{
		ID:            o.ID(),
		UserID:        o.UserID(),
		Status:        o.Status().String(),
		PaymentMode:   o.PaymentMode().String(),
		SubtotalMinor: o.Subtotal().Int64(),
		DiscountMinor: o.DiscountAmount().Int64(),
		AmountMinor:   o.Amount().Int64(),
		Currency:      o.Currency(),
		Items:         items,
		Provisioning:  []queries.ProvisioningView{},
		CreatedAt:     o.CreatedAt(),
		VerifiedAt:    o.VerifiedAt(),
		CompletedAt:   o.CompletedAt(),
	}
}
