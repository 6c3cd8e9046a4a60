package ws

import (
	"encoding/json"
	"sync"
)

// Client represents a single WebSocket connection for a service provider.
type Client struct {
	ProviderID uint
	Send       chan []byte
	Hub        *Hub
	mu         sync.Mutex
	closed     bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.Hub != nil {
		c.Hub.unregister(c)
	}
}

// trySend delivers without blocking, holding the client lock so a concurrent
// Close cannot close the channel mid-send.
func (c *Client) trySend(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// Hub maintains the set of connected providers and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	// providerID -> clients (one provider can have multiple connections)
	byProvider map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		byProvider: make(map[uint]map[*Client]struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.Hub = h
	h.clients[c] = struct{}{}
	if h.byProvider[c.ProviderID] == nil {
		h.byProvider[c.ProviderID] = make(map[*Client]struct{})
	}
	h.byProvider[c.ProviderID][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	if m := h.byProvider[c.ProviderID]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byProvider, c.ProviderID)
		}
	}
}

func (h *Hub) BroadcastToProvider(providerID uint, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.mu.RLock()
	m := h.byProvider[providerID]
	if m == nil {
		h.mu.RUnlock()
		return
	}
	clients := make([]*Client, 0, len(m))
	for c := range m {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.trySend(data)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notifier adapts the hub to the service layer's notification interface.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) BookingAvailable(providerID uint, payload interface{}) {
	n.hub.BroadcastToProvider(providerID, payload)
}

func (n *Notifier) BookingAssigned(providerID uint, payload interface{}) {
	n.hub.BroadcastToProvider(providerID, payload)
}
