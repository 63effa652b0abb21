// Package todocache defines the cache boundary of the todo service: the Cache
// port backends implement, the fixed collection key, and the msgpack codec for
// snapshots crossing that boundary.
//
// The cache is an optimization, not a source of truth. Values only ever enter
// it from a successful store read, and any write to the store deletes the
// collection key rather than patching the cached value.
//
// Presence is explicit. Cache.Get returns (data, ok, err) and an empty
// present payload is distinct from an absent key; the snapshot envelope in
// SnapshotCodec guarantees an empty collection still serializes to a non-empty
// payload.
package todocache
