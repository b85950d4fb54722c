package cache

import (
	"context"
	"testing"
	"time"

	"github.com/soletra/backdrop-backend/internal/domain"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected miss, got %+v", got)
	}

	entry := Entry{
		ExpiresAt: time.Now().Add(30 * time.Second).UnixMilli(),
		Payload:   domain.ActivePresetPayload{ID: "p1", VersionHash: "vh"},
	}
	if err := m.Set(ctx, "k", entry); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err = m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Payload.ID != "p1" {
		t.Fatalf("unexpected entry: %+v", got)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ = m.Get(ctx, "k")
	if got != nil {
		t.Errorf("expected miss after delete, got %+v", got)
	}
}

func TestEntry_Fresh(t *testing.T) {
	now := time.Now()

	fresh := Entry{ExpiresAt: now.Add(time.Second).UnixMilli()}
	if !fresh.Fresh(now) {
		t.Error("entry expiring in the future must be fresh")
	}

	boundary := Entry{ExpiresAt: now.UnixMilli()}
	if boundary.Fresh(now) {
		t.Error("entry expiring exactly at now must be stale")
	}

	stale := Entry{ExpiresAt: now.Add(-time.Second).UnixMilli()}
	if stale.Fresh(now) {
		t.Error("entry in the past must be stale")
	}
}
