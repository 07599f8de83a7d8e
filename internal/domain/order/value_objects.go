package order

import (
	"errors"
	"net/mail"
	"strings"

	"learnhub-checkout/internal/pkg/money"

	"github.com/google/uuid"
)

var ErrInvalidCustomerEmail = errors.New("invalid customer email")

// LineItem is the frozen price of one course at order creation.
type LineItem struct {
	CourseID   uuid.UUID
	CourseName string
	Price      money.Minor
}

// ExpectedItem is what the client claims it paid for; compared against LineItems at verification.
type ExpectedItem struct {
	CourseID uuid.UUID
	Price    money.Minor
}

// CustomerInfo is passed through to the processor widget prefill.
type CustomerInfo struct {
	name    string
	email   string
	contact string
}

func NewCustomerInfo(name, email, contact string) (CustomerInfo, error) {
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return CustomerInfo{}, ErrInvalidCustomerEmail
		}
	}
	return CustomerInfo{
		name:    strings.TrimSpace(name),
		email:   email,
		contact: strings.TrimSpace(contact),
	}, nil
}

// RestoreCustomerInfo rebuilds persisted, already-validated customer data.
func RestoreCustomerInfo(name, email, contact string) CustomerInfo {
	return CustomerInfo{name: name, email: email, contact: contact}
}

func (c CustomerInfo) Name() string    { return c.name }
func (c CustomerInfo) Email() string   { return c.email }
func (c CustomerInfo) Contact() string { return c.contact }
