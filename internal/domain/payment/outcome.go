package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownOutcome      = errors.New("unknown payment outcome type")
	ErrIncompleteOutcome   = errors.New("payment outcome is missing required fields")
	ErrMalformedOutcomeDoc = errors.New("malformed payment outcome")
)

type OutcomeType string

const (
	OutcomeSuccess   OutcomeType = "success"
	OutcomeFailure   OutcomeType = "failure"
	OutcomeCancelled OutcomeType = "cancelled"
)

// Outcome is exactly one of Success, Failure or Cancelled.
type Outcome interface {
	Type() OutcomeType
	outcome()
}

// Success is the processor's claim that a payment went through. It is untrusted until verified.
type Success struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

type Failure struct {
	Reason string
	Code   string
}

// Cancelled means the learner dismissed the widget.
type Cancelled struct{}

func (Success) Type() OutcomeType   { return OutcomeSuccess }
func (Failure) Type() OutcomeType   { return OutcomeFailure }
func (Cancelled) Type() OutcomeType { return OutcomeCancelled }

func (Success) outcome()   {}
func (Failure) outcome()   {}
func (Cancelled) outcome() {}

type outcomeDoc struct {
	Type           string `json:"type"`
	GatewayOrderID string `json:"gatewayOrderId"`
	PaymentID      string `json:"paymentId"`
	Signature      string `json:"signature"`
	Reason         string `json:"reason"`
	Code           string `json:"code"`
}

// DecodeOutcome parses {"type": "success"|"failure"|"cancelled", ...}.
func DecodeOutcome(data []byte) (Outcome, error) {
	var doc outcomeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutcomeDoc, err)
	}
	return doc.toOutcome()
}

func (d outcomeDoc) toOutcome() (Outcome, error) {
	switch OutcomeType(strings.ToLower(strings.TrimSpace(d.Type))) {
	case OutcomeSuccess:
		s := Success{
			GatewayOrderID: strings.TrimSpace(d.GatewayOrderID),
			PaymentID:      strings.TrimSpace(d.PaymentID),
			Signature:      strings.TrimSpace(d.Signature),
		}
		if s.GatewayOrderID == "" || s.PaymentID == "" || s.Signature == "" {
			return nil, fmt.Errorf("%w: success needs gatewayOrderId, paymentId and signature", ErrIncompleteOutcome)
		}
		return s, nil
	case OutcomeFailure:
		reason := strings.TrimSpace(d.Reason)
		if reason == "" {
			return nil, fmt.Errorf("%w: failure needs reason", ErrIncompleteOutcome)
		}
		return Failure{Reason: reason, Code: strings.TrimSpace(d.Code)}, nil
	case OutcomeCancelled:
		return Cancelled{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutcome, d.Type)
	}
}

func EncodeOutcome(o Outcome) ([]byte, error) {
	doc := outcomeDoc{Type: string(o.Type())}
	switch v := o.(type) {
	case Success:
		doc.GatewayOrderID = v.GatewayOrderID
		doc.PaymentID = v.PaymentID
		doc.Signature = v.Signature
	case Failure:
		doc.Reason = v.Reason
		doc.Code = v.Code
	}
	return json.Marshal(doc)
}
