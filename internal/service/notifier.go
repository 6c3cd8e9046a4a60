package service

// Notifier publishes advisory events to providers. Publishing is
// fire-and-forget and must never fail or block the transaction that
// triggered it; implementations drop messages for absent subscribers.
type Notifier interface {
	BookingAvailable(providerID uint, payload interface{})
	BookingAssigned(providerID uint, payload interface{})
}

// NopNotifier discards every event.
type NopNotifier struct{}

func (NopNotifier) BookingAvailable(uint, interface{}) {}
func (NopNotifier) BookingAssigned(uint, interface{})  {}
