// Package portalauth provides the authorization and session-lifecycle layer
// for a multi-tenant web console: a durable versioned session store, pure
// role-decision functions, fail-closed route guards, and the login, logout,
// and profile flows that talk to the upstream console API.
//
// The package is designed for concurrent workloads: Client methods are safe
// to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// portalauth is the public surface. It exposes [Client], [Builder], [Config],
// and value types (Decision, LoginResult, MetricsSnapshot, etc.). Session
// persistence lives in the session sub-package, role decisions in policy,
// and HTTP middleware adapters in guard; none of them import portalauth
// back.
//
// # What this package must NOT do
//
//   - Trust any token beyond its presence: signature validation belongs to
//     the upstream API, and [Client.IntrospectToken] output is display-only.
//   - Cache guard decisions. Every evaluation re-reads the session store so
//     a logout or schema wipe takes effect on the next request.
//   - Fail open. Store errors, unparseable records, and malformed company
//     identifiers all behave like the absent session.
//
// # Performance contract
//
// Evaluate is the hot path. It performs exactly one store read per call and
// no upstream round-trips. Login, Logout, and profile operations are allowed
// one upstream HTTP call plus one store write per call.
package portalauth
