package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStoreSetGet(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}

	store.Set(ctx, "analysis:2025-2026", "payload")
	got, ok := store.Get(ctx, "analysis:2025-2026")
	if !ok || got != "payload" {
		t.Fatalf("unexpected cached value: %v ok=%v", got, ok)
	}

	store.Delete(ctx, "analysis:2025-2026")
	if _, ok := store.Get(ctx, "analysis:2025-2026"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Nanosecond)

	store.Set(ctx, "k", 1)
	time.Sleep(5 * time.Millisecond)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStoreGetOrLoad(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	loads := 0
	loader := func() (any, error) {
		loads++
		return "fresh", nil
	}

	got, err := store.GetOrLoad(ctx, "k", loader)
	if err != nil || got != "fresh" {
		t.Fatalf("unexpected load result: %v %v", got, err)
	}
	got, err = store.GetOrLoad(ctx, "k", loader)
	if err != nil || got != "fresh" {
		t.Fatalf("unexpected cached result: %v %v", got, err)
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
}

func TestStoreGetOrLoadDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	boom := errors.New("boom")
	if _, err := store.GetOrLoad(ctx, "k", func() (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	got, err := store.GetOrLoad(ctx, "k", func() (any, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Fatalf("expected retry after error, got %v %v", got, err)
	}
}
