package store

import (
	"bytes"
	"context"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	kv, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "auth_user"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	want := []byte(`{"email":"admin@vitalvida.ng"}`)
	if err := kv.Set(ctx, "auth_user", want); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := kv.Get(ctx, "auth_user")
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip mismatch: %s", got)
	}

	if err := kv.Delete(ctx, "auth_user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "auth_user"); ok {
		t.Fatalf("expected key gone after delete")
	}
	// Deleting twice is a no-op.
	if err := kv.Delete(ctx, "auth_user"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestFileKeySanitized(t *testing.T) {
	kv, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	ctx := context.Background()
	if err := kv.Set(ctx, "../escape", []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := kv.Get(ctx, "../escape")
	if err != nil || !ok || string(got) != "x" {
		t.Fatalf("sanitized key did not round trip: ok=%v err=%v", ok, err)
	}
}

func TestMemoryIsolation(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()
	src := []byte("original")
	if err := kv.Set(ctx, "k", src); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[0] = 'X'
	got, _, _ := kv.Get(ctx, "k")
	if string(got) != "original" {
		t.Fatalf("store must copy values, got %s", got)
	}
}
