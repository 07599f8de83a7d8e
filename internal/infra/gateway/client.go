// Package gateway talks to the payment processor's order API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"learnhub-checkout/internal/domain/payment"
	"learnhub-checkout/internal/pkg/config"
	"learnhub-checkout/internal/pkg/errs"
	"learnhub-checkout/internal/pkg/money"
)

var (
	ErrNotConfigured = errs.New("payment processor credentials are not configured")
	ErrProcessor     = errs.New("payment processor rejected request")
)

const maxErrorBody = 4 << 10

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
	}
}

// CreateSession opens a processor order for the exact amount in minor units.
func (c *Client) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   req.Amount.Int64(),
		Currency: req.Currency,
		Receipt:  req.Receipt(),
	})
	if err != nil {
		return nil, errs.Wrap(err, "marshal create order payload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "http new request")
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errs.Wrap(err, "http client do")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errs.Wrapf(ErrProcessor, "status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var result createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errs.Wrap(err, "decode create order response")
	}
	if result.ID == "" {
		return nil, errs.Wrap(ErrProcessor, "response without order id")
	}
	if result.Amount != req.Amount.Int64() {
		return nil, errs.Wrapf(ErrProcessor, "processor sized order %d, requested %d", result.Amount, req.Amount.Int64())
	}

	return &payment.Session{
		GatewayOrderID: result.ID,
		Amount:         money.Minor(result.Amount),
		Currency:       result.Currency,
		Status:         result.Status,
	}, nil
}
