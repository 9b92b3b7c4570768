package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopease/shopease-backend/internal/cart"
	"github.com/shopease/shopease-backend/internal/notifications"
	"github.com/shopease/shopease-backend/pkg/db/models"
	pkgerrors "github.com/shopease/shopease-backend/pkg/errors"
	"github.com/shopease/shopease-backend/pkg/handoff"
	"github.com/shopease/shopease-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

type stubSession struct {
	mu     sync.Mutex
	ledger *cart.Ledger
	feed   *notifications.Feed
	state  State
}

func newStubSession() *stubSession {
	return &stubSession{
		ledger: cart.NewLedger(),
		feed:   notifications.NewFeed(),
		state:  StateIdle,
	}
}

func (s *stubSession) ID() string                { return "test-session" }
func (s *stubSession) Lock()                     { s.mu.Lock() }
func (s *stubSession) Unlock()                   { s.mu.Unlock() }
func (s *stubSession) Ledger() *cart.Ledger      { return s.ledger }
func (s *stubSession) Feed() *notifications.Feed { return s.feed }
func (s *stubSession) CheckoutState() State      { return s.state }
func (s *stubSession) SetCheckoutState(st State) { s.state = st }

func (s *stubSession) currentState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func product(id int64, name, price string) models.Product {
	return models.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Image: "/placeholder.svg",
	}
}

func validForm() PaymentForm {
	return PaymentForm{
		Email:          "shopper@example.com",
		CardNumber:     "4242 4242 4242 4242",
		Expiry:         "12/30",
		CVC:            "123",
		CardholderName: "Jane Shopper",
	}
}

func newTestService(t *testing.T, store handoff.Store) Service {
	t.Helper()
	svc, err := NewService(store, notifications.NewEmitter(nil), metrics.NewCheckoutMetrics(nil), time.Millisecond)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestInitiateEmptyCartRejected(t *testing.T) {
	t.Parallel()

	store := handoff.NewMemoryStore()
	svc := newTestService(t, store)
	sess := newStubSession()

	_, err := svc.Initiate(context.Background(), sess)
	if err == nil {
		t.Fatal("expected error for empty cart")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeEmptyCart {
		t.Fatalf("unexpected error code: %v", err)
	}
	if sess.state != StateIdle {
		t.Fatalf("expected idle state, got %q", sess.state)
	}
	if _, ok, _ := store.Get(context.Background(), sess.ID()); ok {
		t.Fatal("expected no handoff slot written")
	}

	events := sess.feed.Drain()
	if len(events) != 1 || events[0].Kind != notifications.KindCartEmpty {
		t.Fatalf("expected cart_empty notification, got %v", events)
	}
}

func TestCheckoutEndToEnd(t *testing.T) {
	t.Parallel()

	store := handoff.NewMemoryStore()
	svc := newTestService(t, store)
	sess := newStubSession()
	ctx := context.Background()

	a := product(1, "A", "10.00")
	b := product(2, "B", "5.00")
	sess.ledger.AddOrIncrement(a)
	sess.ledger.AddOrIncrement(a)
	sess.ledger.AddOrIncrement(b)
	if err := sess.ledger.SetQuantity(1, 0); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	dto, err := svc.Initiate(ctx, sess)
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if len(dto.Lines) != 1 || dto.Lines[0].ProductID != 2 || dto.Lines[0].Quantity != 1 {
		t.Fatalf("unexpected snapshot lines: %+v", dto.Lines)
	}
	if dto.TotalPrice != "5.00" {
		t.Fatalf("expected snapshot total 5.00, got %s", dto.TotalPrice)
	}
	if sess.state != StateSnapshotting {
		t.Fatalf("expected snapshotting state, got %q", sess.state)
	}

	// The snapshot must not observe later ledger mutations.
	sess.ledger.AddOrIncrement(a)
	read, err := svc.Snapshot(ctx, sess)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(read.Lines) != 1 || read.TotalPrice != "5.00" {
		t.Fatalf("snapshot observed live mutation: %+v", read)
	}
	if err := sess.ledger.SetQuantity(1, 0); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}

	settled, err := svc.Confirm(ctx, sess, validForm())
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if settled.TotalPaid != "5.00" {
		t.Fatalf("expected total paid 5.00, got %s", settled.TotalPaid)
	}
	if !sess.ledger.IsEmpty() {
		t.Fatal("expected ledger cleared after settlement")
	}
	if got := sess.ledger.TotalPrice(); !got.IsZero() {
		t.Fatalf("expected zero total after settlement, got %s", got)
	}
	if sess.state != StateIdle {
		t.Fatalf("expected idle state after settlement, got %q", sess.state)
	}
	if _, ok, _ := store.Get(ctx, sess.ID()); ok {
		t.Fatal("expected handoff slot discarded after settlement")
	}

	events := sess.feed.Drain()
	if len(events) != 1 || events[0].Kind != notifications.KindPaymentSettled {
		t.Fatalf("expected payment_settled notification, got %v", events)
	}
}

func TestInitiateRejectedWhileProcessing(t *testing.T) {
	t.Parallel()

	store := handoff.NewMemoryStore()
	svc := newTestService(t, store)
	sess := newStubSession()
	ctx := context.Background()

	sess.ledger.AddOrIncrement(product(2, "B", "5.00"))
	if _, err := svc.Initiate(ctx, sess); err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	slow, err := NewService(store, notifications.NewEmitter(nil), metrics.NewCheckoutMetrics(nil), 500*time.Millisecond)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	done := make(chan error, 1)
	go func() {
		_, err := slow.Confirm(ctx, sess, validForm())
		done <- err
	}()
	waitForState(t, sess, StateProcessing)

	sess.Lock()
	sess.ledger.AddOrIncrement(product(1, "A", "10.00"))
	sess.Unlock()

	_, err = svc.Initiate(ctx, sess)
	if err == nil {
		t.Fatal("expected initiate to be rejected while payment is processing")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error code: %v", err)
	}

	// The in-flight checkout's snapshot must not have been replaced.
	payload, ok, err := store.Get(ctx, sess.ID())
	if err != nil || !ok {
		t.Fatalf("expected the original slot intact, got ok=%v err=%v", ok, err)
	}
	snapshot, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if len(snapshot.Lines) != 1 || snapshot.Lines[0].ProductID != 2 {
		t.Fatalf("unexpected slot contents: %+v", snapshot.Lines)
	}

	if err := <-done; err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if sess.currentState() != StateIdle {
		t.Fatalf("expected idle state after settlement, got %q", sess.currentState())
	}
	if _, ok, _ := store.Get(ctx, sess.ID()); ok {
		t.Fatal("expected handoff slot discarded after settlement")
	}
}

func TestReinitiateFromSnapshottingRewritesSlot(t *testing.T) {
	t.Parallel()

	store := handoff.NewMemoryStore()
	svc := newTestService(t, store)
	sess := newStubSession()
	ctx := context.Background()

	sess.ledger.AddOrIncrement(product(2, "B", "5.00"))
	if _, err := svc.Initiate(ctx, sess); err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	sess.ledger.AddOrIncrement(product(1, "A", "10.00"))
	dto, err := svc.Initiate(ctx, sess)
	if err != nil {
		t.Fatalf("Initiate from snapshotting: %v", err)
	}
	if len(dto.Lines) != 2 || dto.TotalPrice != "15.00" {
		t.Fatalf("expected the slot rewritten with both lines, got %+v", dto)
	}
}

func waitForState(t *testing.T, sess *stubSession, want State) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if sess.currentState() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("session never reached state %q", want)
}

func TestSnapshotMissingSlotReportsEmptyCart(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, handoff.NewMemoryStore())
	sess := newStubSession()

	_, err := svc.Snapshot(context.Background(), sess)
	if err == nil {
		t.Fatal("expected error for missing snapshot")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeEmptyCart {
		t.Fatalf("unexpected error code: %v", err)
	}
	if sess.state != StateIdle {
		t.Fatalf("expected idle state, got %q", sess.state)
	}
}

func TestConfirmWithoutCheckoutInProgress(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, handoff.NewMemoryStore())
	sess := newStubSession()

	_, err := svc.Confirm(context.Background(), sess, validForm())
	if err == nil {
		t.Fatal("expected error without an initiated checkout")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestConfirmWhileProcessingRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, handoff.NewMemoryStore())
	sess := newStubSession()
	sess.state = StateProcessing

	_, err := svc.Confirm(context.Background(), sess, validForm())
	if err == nil {
		t.Fatal("expected error while payment is processing")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestConfirmHonorsCancellation(t *testing.T) {
	t.Parallel()

	store := handoff.NewMemoryStore()
	svc, err := NewService(store, notifications.NewEmitter(nil), metrics.NewCheckoutMetrics(nil), time.Minute)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	sess := newStubSession()
	sess.ledger.AddOrIncrement(product(2, "B", "5.00"))

	ctx := context.Background()
	if _, err := svc.Initiate(ctx, sess); err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = svc.Confirm(canceled, sess, validForm())
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if sess.ledger.IsEmpty() {
		t.Fatal("canceled confirm must not settle the ledger")
	}
	if sess.state != StateSnapshotting {
		t.Fatalf("expected snapshotting state after cancellation, got %q", sess.state)
	}
	if _, ok, _ := store.Get(ctx, sess.ID()); !ok {
		t.Fatal("expected handoff slot retained after cancellation")
	}
}
