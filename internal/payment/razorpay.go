// Package payment wraps the Razorpay REST API for order creation and
// checkout signature verification.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mockdrill/mockdrill-backend/internal/config"
)

// GatewayOrder is the subset of Razorpay's order object we keep.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   cfg.RazorpayBaseURL,
		keyID:     cfg.RazorpayKeyID,
		keySecret: cfg.RazorpayKeySecret,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateOrder registers an order with the gateway. amountCents is the
// charge in the currency's smallest unit (paise for INR), which is also
// the unit Razorpay expects.
func (c *Client) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (*GatewayOrder, error) {
	payload := map[string]any{
		"amount":   amountCents,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gateway returned %s: %s", resp.Status, string(respBody))
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode gateway order: %w", err)
	}
	return &order, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256 over "<order_id>|<payment_id>" keyed with the API secret,
// hex encoded. Comparison is constant time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, c.keySecret)
}

func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
