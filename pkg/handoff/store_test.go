package handoff

import (
	"context"
	"testing"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	if _, ok, err := store.Get(ctx, "sess-1"); err != nil || ok {
		t.Fatalf("expected an empty slot, got ok=%v err=%v", ok, err)
	}

	if err := store.Put(ctx, "sess-1", `[{"id":1}]`); err != nil {
		t.Fatalf("Put: %v", err)
	}
	payload, ok, err := store.Get(ctx, "sess-1")
	if err != nil || !ok {
		t.Fatalf("expected a stored slot, got ok=%v err=%v", ok, err)
	}
	if payload != `[{"id":1}]` {
		t.Fatalf("unexpected payload: %s", payload)
	}

	// A later write replaces the slot, one slot per session.
	if err := store.Put(ctx, "sess-1", `[]`); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if payload, _, _ := store.Get(ctx, "sess-1"); payload != `[]` {
		t.Fatalf("expected the slot to be replaced, got %s", payload)
	}

	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "sess-1"); ok {
		t.Fatal("expected the slot to be gone")
	}
	// Deleting an empty slot is a no-op.
	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete on empty slot: %v", err)
	}
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Put(ctx, "sess-a", "a"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, "sess-b", "b"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, "sess-a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok, _ := store.Get(ctx, "sess-a"); ok {
		t.Fatal("expected sess-a slot to be gone")
	}
	if payload, ok, _ := store.Get(ctx, "sess-b"); !ok || payload != "b" {
		t.Fatalf("expected sess-b slot untouched, got ok=%v payload=%s", ok, payload)
	}
}
