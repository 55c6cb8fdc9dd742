package worker

import (
	"context"
	"testing"
	"time"

	"spendera/internal/amqp"
	"spendera/internal/core"
	"spendera/internal/ledger"
)

type fakeMirror struct {
	calls []ledger.Snapshot
}

func (f *fakeMirror) MirrorSnapshot(_ context.Context, snap ledger.Snapshot) error {
	f.calls = append(f.calls, snap)
	return nil
}

func TestMirrorOnce(t *testing.T) {
	repo := ledger.NewMemoryRepository()
	ctx := context.Background()

	store := ledger.NewStore(repo)
	if err := store.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := store.Add(ctx, "50", core.Expense, "Monthly - Rent", "2025-04", "USD"); err != nil {
		t.Fatalf("add: %v", err)
	}

	mirror := &fakeMirror{}
	w := NewMirrorWorker(repo, mirror, nil, time.Minute)
	if err := w.MirrorOnce(ctx); err != nil {
		t.Fatalf("mirror once: %v", err)
	}
	if len(mirror.calls) != 1 || len(mirror.calls[0].Transactions) != 1 {
		t.Fatalf("expected one mirrored snapshot with one transaction, got %+v", mirror.calls)
	}
}

func TestMirrorOnceEmptySlot(t *testing.T) {
	repo := ledger.NewMemoryRepository()
	mirror := &fakeMirror{}
	w := NewMirrorWorker(repo, mirror, nil, time.Minute)

	if err := w.MirrorOnce(context.Background()); err != nil {
		t.Fatalf("empty slot must mirror as empty ledger: %v", err)
	}
	if len(mirror.calls) != 1 || len(mirror.calls[0].Transactions) != 0 {
		t.Fatalf("expected empty snapshot mirrored, got %+v", mirror.calls)
	}
}

func TestMirrorOnceCorruptSlotSkips(t *testing.T) {
	repo := ledger.NewMemoryRepository()
	repo.Corrupt()
	mirror := &fakeMirror{}
	w := NewMirrorWorker(repo, mirror, nil, time.Minute)

	if err := w.MirrorOnce(context.Background()); err != nil {
		t.Fatalf("corrupt slot must be skipped, not failed: %v", err)
	}
	if len(mirror.calls) != 0 {
		t.Fatal("corrupt slot must not be mirrored")
	}
}

func TestHandleSnapshotSaved(t *testing.T) {
	repo := ledger.NewMemoryRepository()
	mirror := &fakeMirror{}
	w := NewMirrorWorker(repo, mirror, nil, time.Minute)

	msg := amqp.NewSnapshotSavedMessage(7)
	if err := w.HandleSnapshotSaved(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mirror.calls) != 1 {
		t.Fatal("message must trigger a mirror pass")
	}
}
