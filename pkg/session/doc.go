// Package session provides server-side session records keyed by a
// client-held UUID, with pluggable persistence behind the [Store] interface.
//
// Three stores ship with the package: [MemoryStore] for tests and
// single-process apps, [PostgresStore] (single table, JSON blob, upsert on
// save) and [RedisStore] (JSON blob per key, optional TTL).
//
// Saves are unconditional and last-write-wins; concurrent requests sharing
// one session id may overwrite each other's data. Stores return deep copies,
// so two in-flight requests never alias one Values map.
package session
