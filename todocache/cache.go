package todocache

import (
	"context"
	"errors"
)

// ErrUnavailable marks cache transport failures. Readers treat it as a miss;
// writers surface it as a stale-cache warning, never as a write failure.
var ErrUnavailable = errors.New("todocache: cache unavailable")

// Cache is the key-value store holding serialized collection snapshots.
//
// Get reports presence explicitly: ok is false only when the key is absent or
// expired. A present entry with an empty payload is a valid value, so callers
// must never infer a miss from len(data) == 0.
//
// The TTL applied by Set is fixed at construction time; the service caches a
// single logical collection and every entry shares the same lifetime.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
