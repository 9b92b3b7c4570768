package session

import (
	"testing"
	"time"

	"github.com/shopease/shopease-backend/pkg/config"
)

func newTestManager() *Manager {
	return NewManager(config.SessionConfig{
		TTL:             time.Hour,
		JanitorInterval: time.Minute,
	}, nil)
}

func TestResolveCreatesAndReuses(t *testing.T) {
	t.Parallel()

	m := newTestManager()

	sess, created := m.Resolve("")
	if !created {
		t.Fatal("expected a fresh session for a blank id")
	}
	if sess.ID() == "" {
		t.Fatal("expected a generated session id")
	}

	again, created := m.Resolve(sess.ID())
	if created {
		t.Fatal("expected the existing session to be reused")
	}
	if again != sess {
		t.Fatal("expected the same session instance")
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 live session, got %d", m.Len())
	}
}

func TestResolveUnknownIDCreatesFresh(t *testing.T) {
	t.Parallel()

	m := newTestManager()

	sess, created := m.Resolve("missing-id")
	if !created {
		t.Fatal("expected a fresh session for an unknown id")
	}
	// Unknown ids are never adopted; the server assigns its own.
	if sess.ID() == "missing-id" {
		t.Fatal("expected a server-generated id")
	}
	if _, ok := m.Get("missing-id"); ok {
		t.Fatal("unknown id must not be registered")
	}
}

func TestSessionDefaults(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	sess, _ := m.Resolve("")

	if !sess.Ledger().IsEmpty() {
		t.Fatal("expected an empty ledger")
	}
	if sess.Wishlist().Len() != 0 {
		t.Fatal("expected an empty wishlist")
	}
	search, category := sess.Filters()
	if search != "" || category != "All" {
		t.Fatalf("unexpected filter defaults: %q %q", search, category)
	}
}

func TestSetFiltersBlankCategoryDefaultsToAll(t *testing.T) {
	t.Parallel()

	m := newTestManager()
	sess, _ := m.Resolve("")

	sess.SetFilters("camera", "Electronics")
	if search, category := sess.Filters(); search != "camera" || category != "Electronics" {
		t.Fatalf("unexpected filters: %q %q", search, category)
	}

	sess.SetFilters("", "")
	if _, category := sess.Filters(); category != "All" {
		t.Fatalf("expected blank category to default to All, got %q", category)
	}
}

func TestEvictIdle(t *testing.T) {
	t.Parallel()

	m := newTestManager()

	base := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	stale, _ := m.Resolve("")
	m.now = func() time.Time { return base.Add(30 * time.Minute) }
	fresh, _ := m.Resolve("")

	// Past the TTL for the first session only.
	m.now = func() time.Time { return base.Add(61 * time.Minute) }
	if evicted := m.evictIdle(); evicted != 1 {
		t.Fatalf("expected 1 eviction, got %d", evicted)
	}
	if _, ok := m.Get(stale.ID()); ok {
		t.Fatal("expected the idle session to be evicted")
	}
	if _, ok := m.Get(fresh.ID()); !ok {
		t.Fatal("expected the active session to survive")
	}
}

func TestResolveTouchDefersEviction(t *testing.T) {
	t.Parallel()

	m := newTestManager()

	base := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	sess, _ := m.Resolve("")

	// Activity just before the TTL elapses refreshes the clock.
	m.now = func() time.Time { return base.Add(59 * time.Minute) }
	m.Resolve(sess.ID())

	m.now = func() time.Time { return base.Add(90 * time.Minute) }
	if evicted := m.evictIdle(); evicted != 0 {
		t.Fatalf("expected no evictions, got %d", evicted)
	}
}
