// Package session provides durable, versioned persistence for the viewer's
// authentication record: bearer token, profile, global roles, per-company
// roles, and permissions.
//
// # Persistence model
//
// A session is a single process-wide record stored under fixed field names
// (token, user, companies, roles, permissions, adminCompanyId,
// storageVersion). Three [Store] implementations exist: [RedisStore] (one
// Redis hash), [FileStore] (one JSON document, atomic rename on write), and
// [MemoryStore] (tests and demos). A schema-version mismatch detected by
// [Store.EnsureSchema] invalidates the entire record, never a partial merge.
//
// # Fail-closed parsing
//
// Decode failures never escape [Store.Load]; a corrupt record degrades to
// the absent session (nil, nil) so that guard evaluation fails closed.
//
// # Architecture boundaries
//
// This package owns persistence and the [Session] model. It does NOT evaluate
// roles, resolve redirects, or call the upstream API — those responsibilities
// belong to the policy package and the root Client.
//
// # What this package must NOT do
//
//   - Import portalauth, policy, or guard (no upward imports).
//   - Perform authorization decisions.
//   - Cache sessions in front of the backing store.
package session
