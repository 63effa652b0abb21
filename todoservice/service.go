package todoservice

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/goliatone/go-todo-service/todo"
	"github.com/goliatone/go-todo-service/todocache"
)

// Service orchestrates reads and writes between the record store and the
// cache, implementing the cache-aside protocol: list reads populate the
// collection snapshot on a miss, every successful write deletes it.
//
// The service holds no mutable state of its own beyond observability
// counters; all shared state lives in the injected store and cache, which
// bring their own concurrency control.
type Service struct {
	store  todo.Store
	cache  todocache.Cache
	codec  todocache.SnapshotCodec
	logger *slog.Logger

	hits                 atomic.Int64
	misses               atomic.Int64
	created              atomic.Int64
	invalidationFailures atomic.Int64
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New wires a Service from its injected dependencies.
func New(store todo.Store, cache todocache.Cache, opts ...Option) *Service {
	s := &Service{
		store:  store,
		cache:  cache,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the input, inserts the record, and invalidates the
// collection snapshot. The store mutation commits before the cache delete is
// issued, so a racing reader repopulating the cache sees post-write data.
func (s *Service) Create(ctx context.Context, create todo.CreateTodo) (*todo.Todo, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	record, err := s.store.Insert(ctx, create)
	if err != nil {
		return nil, err
	}
	s.created.Add(1)
	s.invalidateCollection(ctx)
	return record, nil
}

// List returns all records, serving the cached collection snapshot when one
// is present and well-formed. Any cache-read anomaly (transport error,
// malformed payload) degrades to a store read; the cache is an optimization,
// never a correctness dependency for reads.
func (s *Service) List(ctx context.Context) ([]*todo.Todo, error) {
	key := todocache.CollectionKey()

	data, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.logger.Warn("cache read failed, falling back to store", "key", key, "error", err)
	case ok:
		records, derr := s.codec.DecodeList(data)
		if derr == nil {
			s.hits.Add(1)
			return records, nil
		}
		s.logger.Warn("malformed snapshot treated as miss", "key", key, "error", derr)
	}
	s.misses.Add(1)

	records, err := s.store.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	// An empty result set is still cached; the snapshot envelope keeps it
	// distinguishable from an absent entry.
	payload, err := s.codec.EncodeList(records)
	if err != nil {
		s.logger.Warn("snapshot encode failed, skipping cache populate", "key", key, "error", err)
		return records, nil
	}
	if err := s.cache.Set(ctx, key, payload); err != nil {
		s.logger.Warn("cache populate failed", "key", key, "error", err)
	}
	return records, nil
}

// Get reads a single record straight from the store. Per-id reads are not
// cached; only the collection snapshot is, so there is no per-id key to keep
// consistent on writes.
func (s *Service) Get(ctx context.Context, id int64) (*todo.Todo, error) {
	return s.store.SelectByID(ctx, id)
}

// Update applies a partial update and invalidates the collection snapshot.
// When no row matched, no effective write occurred and the cache is left
// untouched.
func (s *Service) Update(ctx context.Context, id int64, patch todo.UpdateTodo) (*todo.Todo, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	record, err := s.store.UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidateCollection(ctx)
	return record, nil
}

// Delete removes the record and invalidates the collection snapshot. ErrNotFound
// passes through without touching the cache.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateCollection(ctx)
	return nil
}

// invalidateCollection deletes the snapshot key after a committed write. A
// failed delete never fails the write: the store mutation already committed.
// It is counted and logged at warn level because it is the one case where
// staleness can outlive the TTL bound.
func (s *Service) invalidateCollection(ctx context.Context) {
	key := todocache.CollectionKey()
	if err := s.cache.Delete(ctx, key); err != nil {
		s.invalidationFailures.Add(1)
		s.logger.Warn("snapshot invalidation failed, cache may be stale past TTL",
			"key", key, "error", err)
	}
}

// Stats is a point-in-time snapshot of the service counters.
type Stats struct {
	CacheHits            int64 `json:"cache_hits"`
	CacheMisses          int64 `json:"cache_misses"`
	Created              int64 `json:"created"`
	InvalidationFailures int64 `json:"invalidation_failures"`
}

// Stats reports cache effectiveness and dangling-invalidation occurrences.
func (s *Service) Stats() Stats {
	return Stats{
		CacheHits:            s.hits.Load(),
		CacheMisses:          s.misses.Load(),
		Created:              s.created.Load(),
		InvalidationFailures: s.invalidationFailures.Load(),
	}
}
