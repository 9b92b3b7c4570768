package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/shopease/shopease-backend/internal/notifications"
	"github.com/shopease/shopease-backend/pkg/db/models"
	pkgerrors "github.com/shopease/shopease-backend/pkg/errors"
)

type stubSession struct {
	mu     sync.Mutex
	ledger *Ledger
	feed   *notifications.Feed
}

func newStubSession() *stubSession {
	return &stubSession{ledger: NewLedger(), feed: notifications.NewFeed()}
}

func (s *stubSession) ID() string                    { return "test-session" }
func (s *stubSession) Lock()                         { s.mu.Lock() }
func (s *stubSession) Unlock()                       { s.mu.Unlock() }
func (s *stubSession) Ledger() *Ledger               { return s.ledger }
func (s *stubSession) Feed() *notifications.Feed     { return s.feed }

type stubCatalog struct {
	products map[int64]models.Product
}

func (s stubCatalog) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func newTestService(t *testing.T, products ...models.Product) Service {
	t.Helper()
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	svc, err := NewService(stubCatalog{products: byID}, notifications.NewEmitter(nil))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	sess := newStubSession()

	_, err := svc.AddItem(context.Background(), sess, 999)
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
	if !sess.ledger.IsEmpty() {
		t.Fatal("ledger mutated by rejected add")
	}
}

func TestServiceAddItemEmitsNotification(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, product(1, "Premium Wireless Headphones", "199.99"))
	sess := newStubSession()

	dto, err := svc.AddItem(context.Background(), sess, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.TotalItems != 1 {
		t.Fatalf("expected total items 1, got %d", dto.TotalItems)
	}

	events := sess.feed.Drain()
	if len(events) != 1 {
		t.Fatalf("expected one notification, got %d", len(events))
	}
	if events[0].Kind != notifications.KindItemAdded {
		t.Fatalf("unexpected event kind %q", events[0].Kind)
	}
	if events[0].ProductName != "Premium Wireless Headphones" {
		t.Fatalf("unexpected product name %q", events[0].ProductName)
	}
}

func TestServiceSetQuantityAndTotals(t *testing.T) {
	t.Parallel()

	svc := newTestService(t,
		product(1, "A", "10.00"),
		product(2, "B", "5.00"),
	)
	sess := newStubSession()
	ctx := context.Background()

	for _, id := range []int64{1, 1, 2} {
		if _, err := svc.AddItem(ctx, sess, id); err != nil {
			t.Fatalf("AddItem(%d): %v", id, err)
		}
	}

	dto := svc.Fetch(ctx, sess)
	if dto.TotalItems != 3 || dto.TotalPrice != "25.00" {
		t.Fatalf("unexpected totals: %d items, %s", dto.TotalItems, dto.TotalPrice)
	}

	dto, err := svc.SetQuantity(ctx, sess, 1, 0)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if dto.TotalItems != 1 || dto.TotalPrice != "5.00" {
		t.Fatalf("unexpected totals after removal: %d items, %s", dto.TotalItems, dto.TotalPrice)
	}

	if _, err := svc.SetQuantity(ctx, sess, 2, -3); err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestServiceClear(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, product(1, "A", "10.00"))
	sess := newStubSession()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, sess, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	dto := svc.Clear(ctx, sess)
	if dto.TotalItems != 0 || dto.TotalPrice != "0.00" {
		t.Fatalf("unexpected totals after clear: %d items, %s", dto.TotalItems, dto.TotalPrice)
	}
}
