package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/shopease/shopease-backend/pkg/logger"
)

// Kind names the outbound events the core reports to the presentation layer.
type Kind string

const (
	KindItemAdded      Kind = "item_added"
	KindCartEmpty      Kind = "cart_empty"
	KindPaymentSettled Kind = "payment_settled"
)

// Event is a single user-visible notification. Nothing here is fatal;
// the session always continues after an event is reported.
type Event struct {
	Kind        Kind      `json:"kind"`
	Message     string    `json:"message"`
	ProductName string    `json:"product_name,omitempty"`
	At          time.Time `json:"at"`
}

// ItemAdded builds the event emitted after a successful add-to-cart.
func ItemAdded(productName string) Event {
	return Event{
		Kind:        KindItemAdded,
		Message:     productName + " has been added to your cart.",
		ProductName: productName,
		At:          time.Now().UTC(),
	}
}

// CartEmpty builds the event emitted when checkout is rejected on an
// empty cart.
func CartEmpty() Event {
	return Event{
		Kind:    KindCartEmpty,
		Message: "Please add some items to your cart before checkout.",
		At:      time.Now().UTC(),
	}
}

// PaymentSettled builds the event emitted after simulated payment completes.
func PaymentSettled() Event {
	return Event{
		Kind:    KindPaymentSettled,
		Message: "Your order has been placed successfully. Thank you for shopping with us!",
		At:      time.Now().UTC(),
	}
}

const feedCapacity = 32

// Feed is a bounded per-session notification buffer the UI drains. Oldest
// events are dropped once the capacity is reached.
type Feed struct {
	mu     sync.Mutex
	events []Event
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Push appends an event, evicting the oldest past capacity.
func (f *Feed) Push(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	if overflow := len(f.events) - feedCapacity; overflow > 0 {
		f.events = f.events[overflow:]
	}
}

// Drain returns all pending events and empties the feed.
func (f *Feed) Drain() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := f.events
	f.events = nil
	if events == nil {
		events = []Event{}
	}
	return events
}

// Emitter forwards events to a session feed and the structured log.
type Emitter struct {
	logg *logger.Logger
}

// NewEmitter builds an emitter. A nil logger disables the log sink.
func NewEmitter(logg *logger.Logger) *Emitter {
	return &Emitter{logg: logg}
}

// Emit records the event on the feed and logs it.
func (e *Emitter) Emit(ctx context.Context, feed *Feed, event Event) {
	if feed != nil {
		feed.Push(event)
	}
	if e != nil && e.logg != nil {
		ctx = e.logg.WithFields(ctx, map[string]any{
			"event_kind":   string(event.Kind),
			"product_name": event.ProductName,
		})
		e.logg.Info(ctx, "notification.emitted")
	}
}
