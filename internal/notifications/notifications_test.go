package notifications

import (
	"context"
	"fmt"
	"testing"
)

func TestEventMessages(t *testing.T) {
	t.Parallel()

	added := ItemAdded("Wireless Headphones")
	if added.Kind != KindItemAdded {
		t.Fatalf("unexpected kind: %s", added.Kind)
	}
	if added.Message != "Wireless Headphones has been added to your cart." {
		t.Fatalf("unexpected message: %s", added.Message)
	}
	if added.ProductName != "Wireless Headphones" {
		t.Fatalf("unexpected product name: %s", added.ProductName)
	}

	empty := CartEmpty()
	if empty.Kind != KindCartEmpty || empty.Message != "Please add some items to your cart before checkout." {
		t.Fatalf("unexpected cart_empty event: %+v", empty)
	}

	settled := PaymentSettled()
	if settled.Kind != KindPaymentSettled {
		t.Fatalf("unexpected kind: %s", settled.Kind)
	}
}

func TestFeedDrainEmptiesAndNeverReturnsNil(t *testing.T) {
	t.Parallel()

	feed := NewFeed()
	if events := feed.Drain(); events == nil || len(events) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %v", events)
	}

	feed.Push(ItemAdded("A"))
	feed.Push(ItemAdded("B"))

	events := feed.Drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ProductName != "A" || events[1].ProductName != "B" {
		t.Fatalf("expected arrival order preserved, got %v", events)
	}

	if events := feed.Drain(); len(events) != 0 {
		t.Fatalf("expected the feed drained, got %v", events)
	}
}

func TestFeedEvictsOldestPastCapacity(t *testing.T) {
	t.Parallel()

	feed := NewFeed()
	for i := 0; i < feedCapacity+5; i++ {
		feed.Push(ItemAdded(fmt.Sprintf("p%d", i)))
	}

	events := feed.Drain()
	if len(events) != feedCapacity {
		t.Fatalf("expected %d events, got %d", feedCapacity, len(events))
	}
	if events[0].ProductName != "p5" {
		t.Fatalf("expected the oldest events evicted, got first %s", events[0].ProductName)
	}
	if events[len(events)-1].ProductName != fmt.Sprintf("p%d", feedCapacity+4) {
		t.Fatalf("unexpected newest event: %s", events[len(events)-1].ProductName)
	}
}

func TestEmitterTolerantOfNilSinks(t *testing.T) {
	t.Parallel()

	// A nil logger drops the log sink, a nil feed drops the buffer. Neither
	// may panic.
	emitter := NewEmitter(nil)
	emitter.Emit(context.Background(), nil, CartEmpty())

	feed := NewFeed()
	emitter.Emit(context.Background(), feed, PaymentSettled())
	if events := feed.Drain(); len(events) != 1 || events[0].Kind != KindPaymentSettled {
		t.Fatalf("expected the event on the feed, got %v", events)
	}
}
