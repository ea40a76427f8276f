package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockdrill/mockdrill-backend/internal/config"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	sig := sign("order_abc", "pay_xyz", secret)

	assert.True(t, VerifySignature("order_abc", "pay_xyz", sig, secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", sig, "other_secret"))
	assert.False(t, VerifySignature("order_other", "pay_xyz", sig, secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", "", secret))
}

func TestCreateOrder(t *testing.T) {
	var gotAuthUser, gotAuthPass string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		gotAuthUser, gotAuthPass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_abc",
			Amount:   49900,
			Currency: "INR",
			Receipt:  "rcpt_1",
			Status:   "created",
		})
	}))
	defer srv.Close()

	client := NewClient(&config.Config{
		RazorpayBaseURL:   srv.URL,
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: "rzp_test_secret",
	})

	order, err := client.CreateOrder(context.Background(), 49900, "INR", "rcpt_1")
	require.NoError(t, err)

	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(49900), order.Amount)
	assert.Equal(t, "rzp_test_key", gotAuthUser)
	assert.Equal(t, "rzp_test_secret", gotAuthPass)
	assert.Equal(t, float64(49900), gotPayload["amount"])
	assert.Equal(t, "INR", gotPayload["currency"])
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(&config.Config{RazorpayBaseURL: srv.URL})
	_, err := client.CreateOrder(context.Background(), 100, "INR", "rcpt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
