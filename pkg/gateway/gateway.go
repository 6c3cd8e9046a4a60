package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// OrderRequest asks the gateway for a payment order. Amount is in minor
// currency units (paise for INR).
type OrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
}

// Order is the gateway-side order reference an engagement's payment is
// settled against.
type Order struct {
	ID       string
	Status   string
	Receipt  string
	Currency string
}

// Client is the payment gateway contract the ledger engine consumes. Tests
// and development substitute FakeClient.
type Client interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// SignPayload computes the HMAC-SHA256 the gateway sends with settlement
// callbacks: hex(hmac_sha256(secret, orderID|paymentID)).
func SignPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature does a constant-time comparison of the expected and
// presented signatures.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := SignPayload(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
