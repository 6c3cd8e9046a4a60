package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// RazorpayClient creates orders against the Razorpay Orders API using basic
// auth with the key pair.
type RazorpayClient struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	client    *http.Client
}

func NewRazorpayClient(keyID, keySecret string, timeout time.Duration) *RazorpayClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RazorpayClient{
		BaseURL:   "https://api.razorpay.com/v1",
		KeyID:     keyID,
		KeySecret: keySecret,
		client:    &http.Client{Timeout: timeout},
	}
}

type razorpayOrderReq struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type razorpayOrderResp struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	body, _ := json.Marshal(razorpayOrderReq{
		Amount:         req.AmountMinor,
		Currency:       req.Currency,
		Receipt:        req.Receipt,
		PaymentCapture: 1,
	})
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.SetBasicAuth(c.KeyID, c.KeySecret)
	resp, err := c.client.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("[gateway] order create failed status=%d body=%s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("gateway order create: %d", resp.StatusCode)
	}
	var out razorpayOrderResp
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	return &Order{ID: out.ID, Status: out.Status, Receipt: out.Receipt, Currency: out.Currency}, nil
}

func (c *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.KeySecret, orderID, paymentID, signature)
}
