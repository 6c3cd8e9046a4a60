package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// FakeClient is an in-process gateway for development and tests. Orders are
// kept in memory and signatures check against the configured secret.
type FakeClient struct {
	Secret string

	mu     sync.Mutex
	orders map[string]*Order
	// FailNext makes the next CreateOrder return this error, then clears.
	FailNext error
}

func NewFakeClient(secret string) *FakeClient {
	return &FakeClient{Secret: secret, orders: make(map[string]*Order)}
}

func (f *FakeClient) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailNext != nil {
		err := f.FailNext
		f.FailNext = nil
		return nil, err
	}
	o := &Order{
		ID:       "order_" + uuid.NewString()[:12],
		Status:   "created",
		Receipt:  req.Receipt,
		Currency: req.Currency,
	}
	f.orders[o.ID] = o
	return o, nil
}

func (f *FakeClient) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(f.Secret, orderID, paymentID, signature)
}

// Sign produces a valid callback signature for an order, for tests and
// local settlement simulation.
func (f *FakeClient) Sign(orderID, paymentID string) string {
	return SignPayload(f.Secret, orderID, paymentID)
}
