package cacheinfra

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-todo-service/todocache"
)

func memoryConfig(ttl time.Duration) todocache.Config {
	cfg := todocache.DefaultConfig()
	cfg.TTL = ttl
	cfg.Capacity = 64
	cfg.NumShards = 2
	return cfg
}

func TestMemory_SetGetRoundTrip(t *testing.T) {
	cache, err := NewMemory(memoryConfig(time.Minute))
	if err != nil {
		t.Fatalf("NewMemory failed: %v", err)
	}
	ctx := context.Background()

	payload := []byte("snapshot-bytes")
	if err := cache.Set(ctx, "todos::all", payload); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := cache.Get(ctx, "todos::all")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected key to be present")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload mismatch: got %q", got)
	}
}

func TestMemory_AbsentKey(t *testing.T) {
	cache, err := NewMemory(memoryConfig(time.Minute))
	if err != nil {
		t.Fatalf("NewMemory failed: %v", err)
	}

	_, ok, err := cache.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected absent key to report ok=false")
	}
}

func TestMemory_EmptyPayloadIsPresent(t *testing.T) {
	cache, err := NewMemory(memoryConfig(time.Minute))
	if err != nil {
		t.Fatalf("NewMemory failed: %v", err)
	}
	ctx := context.Background()

	if err := cache.Set(ctx, "empty", []byte{}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data, ok, err := cache.Get(ctx, "empty")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	// Presence is the flag; a zero-length value must not read as a miss.
	if !ok {
		t.Fatal("expected empty payload to be present")
	}
	if len(data) != 0 {
		t.Errorf("expected empty payload, got %q", data)
	}
}

func TestMemory_Delete(t *testing.T) {
	cache, err := NewMemory(memoryConfig(time.Minute))
	if err != nil {
		t.Fatalf("NewMemory failed: %v", err)
	}
	ctx := context.Background()

	if err := cache.Set(ctx, "todos::all", []byte("x")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cache.Delete(ctx, "todos::all"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := cache.Get(ctx, "todos::all"); ok {
		t.Error("expected key gone after delete")
	}

	// Deleting an absent key is not an error.
	if err := cache.Delete(ctx, "todos::all"); err != nil {
		t.Errorf("double delete failed: %v", err)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	cache, err := NewMemory(memoryConfig(50 * time.Millisecond))
	if err != nil {
		t.Fatalf("NewMemory failed: %v", err)
	}
	ctx := context.Background()

	if err := cache.Set(ctx, "todos::all", []byte("x")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok, _ := cache.Get(ctx, "todos::all"); !ok {
		t.Fatal("expected key present before TTL")
	}

	time.Sleep(120 * time.Millisecond)

	if _, ok, _ := cache.Get(ctx, "todos::all"); ok {
		t.Error("expected key expired after TTL")
	}
}

func TestNewMemory_RejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig(time.Minute)
	cfg.Capacity = 0
	if _, err := NewMemory(cfg); err == nil {
		t.Error("expected config validation error")
	}
}
