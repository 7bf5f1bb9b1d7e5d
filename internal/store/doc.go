// Package store provides the key/value persistence used for archives and
// drafts.
//
// Values are opaque JSON blobs addressed by string keys. Every write replaces
// the whole value for its key; callers do read-modify-write on collections.
// Concurrent writers to the same key are not coordinated: the last write
// wins. Running several sessions against one database would need optimistic
// concurrency (compare the updated_at column) or an append-only layout.
//
// # Backends
//
//   - memory:   process-local map, for tests and throwaway sessions
//   - sqlite:   github.com/mattn/go-sqlite3, the default
//   - postgres: github.com/lib/pq
//
// # SQLite Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Schema versioned with PRAGMA user_version
package store
