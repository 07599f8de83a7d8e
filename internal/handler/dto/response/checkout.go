package response

import (
	"time"

	"learnhub-checkout/internal/domain/order"
	"learnhub-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// CheckoutWidget is handed to the processor's client widget as-is, hence the snake_case order_id.
type CheckoutWidget struct {
	Key      string  `json:"key"`
	Amount   int64   `json:"amount"`
	Currency string  `json:"currency"`
	OrderID  string  `json:"order_id"`
	Prefill  Prefill `json:"prefill"`
}

type CourseProvisionResponse struct {
	CourseID  uuid.UUID  `json:"courseId"`
	Outcome   string     `json:"outcome"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type ProvisionResponse struct {
	OrderID   uuid.UUID                 `json:"orderId"`
	Complete  bool                      `json:"complete"`
	AllFailed bool                      `json:"allFailed"`
	Courses   []CourseProvisionResponse `json:"courses"`
}

func FromProvisionResult(r *commands.ProvisionResult) *ProvisionResponse {
	if r == nil {
		return nil
	}
	res := &ProvisionResponse{
		OrderID:   r.OrderID,
		Complete:  r.Complete(),
		AllFailed: r.AllFailed(),
		Courses:   make([]CourseProvisionResponse, len(r.Courses)),
	}
	for i, c := range r.Courses {
		res.Courses[i] = CourseProvisionResponse{
			CourseID:  c.CourseID,
			Outcome:   string(c.Outcome),
			ExpiresAt: c.ExpiresAt,
		}
		if c.Err != nil {
			res.Courses[i].Error = "enrollment could not be granted"
		}
	}
	return res
}

type CheckoutResponse struct {
	OrderID          uuid.UUID          `json:"orderId"`
	GatewayOrderID   string             `json:"gatewayOrderId"`
	GatewayPublicKey string             `json:"gatewayPublicKey"`
	Amount           int64              `json:"amount"`
	Currency         string             `json:"currency"`
	Status           string             `json:"status"`
	PaymentMode      string             `json:"paymentMode"`
	Checkout         *CheckoutWidget    `json:"checkout,omitempty"`
	Provision        *ProvisionResponse `json:"provision,omitempty"`
	Replayed         bool               `json:"replayed,omitempty"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	res := &CheckoutResponse{
		OrderID:          r.OrderID,
		GatewayOrderID:   r.GatewayOrderID,
		GatewayPublicKey: r.GatewayPublicKey,
		Amount:           r.AmountMinor,
		Currency:         r.Currency,
		Status:           string(r.Status),
		PaymentMode:      string(r.PaymentMode),
		Provision:        FromProvisionResult(r.Provision),
		Replayed:         r.IsReplayed,
	}
	if r.PaymentMode == order.PaymentModeGateway && r.GatewayOrderID != "" {
		res.Checkout = &CheckoutWidget{
			Key:      r.GatewayPublicKey,
			Amount:   r.AmountMinor,
			Currency: r.Currency,
			OrderID:  r.GatewayOrderID,
			Prefill: Prefill{
				Name:    r.Customer.Name(),
				Email:   r.Customer.Email(),
				Contact: r.Customer.Contact(),
			},
		}
	}
	return res
}

type VerifyResponse struct {
	Verified  bool               `json:"verified"`
	OrderID   uuid.UUID          `json:"orderId"`
	Status    string             `json:"status"`
	Reason    string             `json:"reason,omitempty"`
	Provision *ProvisionResponse `json:"provision,omitempty"`
}

func FromVerifyResult(r *commands.VerifyResult) *VerifyResponse {
	return &VerifyResponse{
		Verified:  r.Verified,
		OrderID:   r.OrderID,
		Status:    string(r.Status),
		Provision: FromProvisionResult(r.Provision),
	}
}
