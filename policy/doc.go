// Package policy provides the pure authorization decision functions evaluated
// over a session snapshot: role membership, developer-level access, and
// per-company business-level access.
//
// # Design
//
// A [Policy] is configured once with the recognized role names and home
// paths, then treated as immutable. Every query is a pure function of the
// session snapshot passed in; the absent (nil) session yields false or the
// empty path from every query, and no query ever panics.
//
// # Architecture boundaries
//
// This package owns role comparison and home-route resolution. It does NOT
// read stores, perform I/O, or issue redirects — those responsibilities
// belong to the root Client and the guard package.
//
// # What this package must NOT do
//
//   - Import portalauth or guard (no upward imports).
//   - Touch the network or the session store.
//   - Mutate a session snapshot.
package policy
