package di

import (
	"context"
	"fmt"
	"testing"

	"github.com/goliatone/go-todo-service/todo"
	"github.com/goliatone/go-todo-service/todocache"
)

func newBenchContainer(b *testing.B, name string) *Container {
	b.Helper()

	cfg := DefaultConfig()
	cfg.Store.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	c, err := NewContainer(context.Background(), cfg, testLogger())
	if err != nil {
		b.Fatalf("NewContainer failed: %v", err)
	}
	b.Cleanup(func() { c.Close() })

	for i := 0; i < 50; i++ {
		if _, err := c.Service().Create(context.Background(), todo.CreateTodo{
			Title: fmt.Sprintf("bench record %d", i),
		}); err != nil {
			b.Fatalf("seed create failed: %v", err)
		}
	}
	return c
}

// BenchmarkList_CacheHit measures the snapshot-served read path; after the
// first iteration every list is a cache hit.
func BenchmarkList_CacheHit(b *testing.B) {
	c := newBenchContainer(b, "bench_hit")
	ctx := context.Background()

	if _, err := c.Service().List(ctx); err != nil {
		b.Fatalf("warmup list failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Service().List(ctx); err != nil {
			b.Fatalf("list failed: %v", err)
		}
	}
}

// BenchmarkList_CacheMiss measures the store read plus snapshot populate path
// by invalidating between iterations.
func BenchmarkList_CacheMiss(b *testing.B) {
	c := newBenchContainer(b, "bench_miss")
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Service().List(ctx); err != nil {
			b.Fatalf("list failed: %v", err)
		}
		b.StopTimer()
		if err := c.Cache().Delete(ctx, todocache.CollectionKey()); err != nil {
			b.Fatalf("invalidate failed: %v", err)
		}
		b.StartTimer()
	}
}

// BenchmarkList_Parallel exercises the hit path under reader concurrency.
func BenchmarkList_Parallel(b *testing.B) {
	c := newBenchContainer(b, "bench_parallel")
	ctx := context.Background()

	if _, err := c.Service().List(ctx); err != nil {
		b.Fatalf("warmup list failed: %v", err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := c.Service().List(ctx); err != nil {
				b.Fatalf("list failed: %v", err)
			}
		}
	})
}
