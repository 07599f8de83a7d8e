package order

import (
	"errors"
	"fmt"
)

var ErrUnknownStatus = errors.New("unknown order status")

type Status string

const (
	StatusCreated     Status = "CREATED"
	StatusPending     Status = "PENDING"
	StatusVerified    Status = "VERIFIED"
	StatusFailed      Status = "FAILED"
	StatusProvisioned Status = "PROVISIONED"
	StatusExpired     Status = "EXPIRED"
)

// One-way lifecycle. CREATED -> VERIFIED is only taken by the demo path.
var transitions = map[Status][]Status{
	StatusCreated:  {StatusPending, StatusFailed, StatusVerified, StatusExpired},
	StatusPending:  {StatusVerified, StatusFailed, StatusExpired},
	StatusVerified: {StatusProvisioned},
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusCreated, StatusPending, StatusVerified, StatusFailed, StatusProvisioned, StatusExpired:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

func (s Status) String() string { return string(s) }

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsPaid is true once a payment has been trusted.
func (s Status) IsPaid() bool {
	return s == StatusVerified || s == StatusProvisioned
}

// IsOpen is true while a gateway callback may still arrive.
func (s Status) IsOpen() bool {
	return s == StatusCreated || s == StatusPending
}

type PaymentMode string

const (
	PaymentModeGateway PaymentMode = "gateway"
	PaymentModeDemo    PaymentMode = "demo"
)

func (m PaymentMode) String() string { return string(m) }

type FailureReason string

const (
	ReasonSignatureMismatch FailureReason = "signature_mismatch"
	ReasonAmountMismatch    FailureReason = "amount_mismatch"
	ReasonGatewaySession    FailureReason = "gateway_session_failed"
)
