// Package todoservice implements the cache-aside orchestration between the
// record store and the cache layer.
//
// # Protocol
//
// Reads of the collection probe the cache first and fall back to the store on
// a miss, repopulating the snapshot with the backend's fixed TTL. Writes go to
// the store first; only after the mutation committed is the snapshot key
// deleted. Invalidation always deletes, never updates in place.
//
// # Consistency
//
// A cache hit is at most TTL-stale relative to the last invalidation. There is
// a race window between a writer's commit and its cache delete during which a
// concurrent reader may re-cache pre-write data it read before the commit;
// that window is inherent to cache-aside without store-side locking and is
// bounded by the TTL. The one way staleness can exceed the TTL is a failed
// invalidation delete, which the service counts and logs at warn level.
//
// # Failure policy
//
// Store failures are fatal for the current operation and propagate. Cache
// failures on the read path degrade to a store read; on the write path a
// failed invalidation is reported through Stats and logging while the write
// itself still succeeds.
package todoservice
