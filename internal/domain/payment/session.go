package payment

import (
	"learnhub-checkout/internal/pkg/money"

	"github.com/google/uuid"
)

// SessionRequest asks the processor to open an order sized to the checkout amount.
type SessionRequest struct {
	OrderID  uuid.UUID
	Amount   money.Minor
	Currency string
}

// Receipt is the merchant reference the processor echoes back. Capped at 40 chars by the processor.
func (r SessionRequest) Receipt() string {
	return r.OrderID.String()
}

// Session is the processor-side order the widget is opened against.
type Session struct {
	GatewayOrderID string
	Amount         money.Minor
	Currency       string
	Status         string
}

// DemoPaymentID is the synthetic payment id used when no processor is configured.
func DemoPaymentID(orderID uuid.UUID) string {
	return "demo_" + orderID.String()
}
