package checkout

import (
	"context"
	"time"

	"github.com/shopease/shopease-backend/internal/cart"
	"github.com/shopease/shopease-backend/internal/notifications"
	pkgerrors "github.com/shopease/shopease-backend/pkg/errors"
	"github.com/shopease/shopease-backend/pkg/handoff"
	"github.com/shopease/shopease-backend/pkg/metrics"
)

// Session is the slice of the shopping session the checkout service
// works against.
type Session interface {
	ID() string
	Lock()
	Unlock()
	Ledger() *cart.Ledger
	Feed() *notifications.Feed
	CheckoutState() State
	SetCheckoutState(State)
}

// PaymentForm carries the simulated payment fields. Presence and shape
// are validated; card correctness is not, the processor is a local
// simulation.
type PaymentForm struct {
	Email          string `json:"email" validate:"required,email"`
	CardNumber     string `json:"card_number" validate:"required"`
	Expiry         string `json:"expiry" validate:"required"`
	CVC            string `json:"cvc" validate:"required"`
	CardholderName string `json:"cardholder_name" validate:"required"`
}

// SettlementDTO reports a completed simulated payment.
type SettlementDTO struct {
	TotalPaid string    `json:"total_paid"`
	SettledAt time.Time `json:"settled_at"`
}

// Service drives the checkout handoff state machine.
type Service interface {
	// Initiate snapshots a non-empty cart into the handoff slot. An empty
	// cart is rejected without touching ledger state.
	Initiate(ctx context.Context, sess Session) (SnapshotDTO, error)
	// Snapshot reads the handoff slot for the checkout screen. A missing
	// slot is cleared and reported as an empty cart.
	Snapshot(ctx context.Context, sess Session) (SnapshotDTO, error)
	// Confirm simulates payment processing and settles: the live ledger
	// is cleared and the handoff slot discarded.
	Confirm(ctx context.Context, sess Session, form PaymentForm) (SettlementDTO, error)
}

type service struct {
	store   handoff.Store
	emitter *notifications.Emitter
	metrics *metrics.CheckoutMetrics
	delay   time.Duration
}

// NewService builds the checkout service.
func NewService(store handoff.Store, emitter *notifications.Emitter, m *metrics.CheckoutMetrics, delay time.Duration) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "handoff store is required")
	}
	if emitter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification emitter is required")
	}
	return &service{
		store:   store,
		emitter: emitter,
		metrics: m,
		delay:   delay,
	}, nil
}

func (s *service) Initiate(ctx context.Context, sess Session) (SnapshotDTO, error) {
	s.metrics.IncAttempt()

	sess.Lock()
	// Single-flight: a snapshot written while a confirm is processing
	// would be deleted by that confirm's settlement. Re-initiating from
	// Snapshotting stays allowed and rewrites the slot.
	if sess.CheckoutState() == StateProcessing {
		sess.Unlock()
		return SnapshotDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "payment is already processing")
	}
	if sess.Ledger().IsEmpty() {
		sess.SetCheckoutState(StateIdle)
		sess.Unlock()
		s.metrics.IncEmptyCart()
		s.emitter.Emit(ctx, sess.Feed(), notifications.CartEmpty())
		return SnapshotDTO{}, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	snapshot := NewSnapshot(sess.Ledger().Lines())
	sess.SetCheckoutState(StateSnapshotting)
	sess.Unlock()

	payload, err := snapshot.Encode()
	if err != nil {
		s.resetState(sess)
		return SnapshotDTO{}, err
	}
	if err := s.store.Put(ctx, sess.ID(), payload); err != nil {
		s.resetState(sess)
		return SnapshotDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write checkout handoff")
	}
	return snapshot.DTO(), nil
}

func (s *service) Snapshot(ctx context.Context, sess Session) (SnapshotDTO, error) {
	payload, ok, err := s.store.Get(ctx, sess.ID())
	if err != nil {
		return SnapshotDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read checkout handoff")
	}
	if !ok {
		// Checkout screen entered without a snapshot: clear any stale
		// state and send the shopper back to the catalog.
		if err := s.store.Delete(ctx, sess.ID()); err != nil {
			return SnapshotDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear checkout handoff")
		}
		s.resetState(sess)
		return SnapshotDTO{}, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	snapshot, err := DecodeSnapshot(payload)
	if err != nil {
		return SnapshotDTO{}, err
	}
	return snapshot.DTO(), nil
}

func (s *service) Confirm(ctx context.Context, sess Session, _ PaymentForm) (SettlementDTO, error) {
	sess.Lock()
	switch sess.CheckoutState() {
	case StateSnapshotting:
	case StateProcessing:
		sess.Unlock()
		return SettlementDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "payment is already processing")
	default:
		sess.Unlock()
		return SettlementDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "no checkout in progress")
	}
	sess.SetCheckoutState(StateProcessing)
	sess.Unlock()

	payload, ok, err := s.store.Get(ctx, sess.ID())
	if err != nil || !ok {
		s.revertToSnapshotting(sess)
		if err != nil {
			return SettlementDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read checkout handoff")
		}
		return SettlementDTO{}, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	snapshot, err := DecodeSnapshot(payload)
	if err != nil {
		s.revertToSnapshotting(sess)
		return SettlementDTO{}, err
	}

	// Simulated processing latency. The session lock is not held here so
	// reads stay responsive; the Processing state is the single-flight
	// guard against a second confirm.
	start := time.Now()
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		s.revertToSnapshotting(sess)
		return SettlementDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, ctx.Err(), "payment processing interrupted")
	}

	sess.Lock()
	sess.Ledger().Clear()
	sess.SetCheckoutState(StateIdle)
	sess.Unlock()

	if err := s.store.Delete(ctx, sess.ID()); err != nil {
		return SettlementDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discard checkout handoff")
	}

	s.metrics.IncSettled()
	s.metrics.ObserveProcessing(time.Since(start))
	s.emitter.Emit(ctx, sess.Feed(), notifications.PaymentSettled())

	return SettlementDTO{
		TotalPaid: snapshot.Total().StringFixed(2),
		SettledAt: time.Now().UTC(),
	}, nil
}

func (s *service) resetState(sess Session) {
	sess.Lock()
	sess.SetCheckoutState(StateIdle)
	sess.Unlock()
}

func (s *service) revertToSnapshotting(sess Session) {
	sess.Lock()
	sess.SetCheckoutState(StateSnapshotting)
	sess.Unlock()
}
