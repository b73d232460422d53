package storage

import (
	"context"
	"testing"
)

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	if _, ok, err := kv.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("empty get: ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, KeyExpenses, "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, KeyExpenses)
	if err != nil || !ok || v != "[]" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}

	if err := kv.Set(ctx, KeyExpenses, `[{"id":"1"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := kv.Get(ctx, KeyExpenses); v != `[{"id":"1"}]` {
		t.Fatalf("overwrite lost: %q", v)
	}

	if err := kv.Delete(ctx, KeyExpenses); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeyExpenses); ok {
		t.Fatal("deleted key still present")
	}

	// Deleting a missing key succeeds.
	if err := kv.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
