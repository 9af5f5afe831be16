// Package guard exposes HTTP middleware adapters that enforce route access
// through portalauth.Client.Evaluate: public-auth, developer, and
// company-scoped business routes, for both net/http and gin handlers.
//
// # Guards
//
//   - [PublicAuth] / [GinPublicAuth] — auth pages; signed-in viewers with a
//     recognized home are bounced to it, everyone else stays in place.
//   - [Developer] / [GinDeveloper] — requires a signed-in developer session.
//   - [Business] / [GinBusiness] — requires a business role for the company
//     named by the route parameter.
//
// Each guard re-reads the session store through the client on every request
// and answers a denial with a 302 to the configured login route.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Client calls. It does NOT make
// authorization decisions itself — all decisions are delegated to
// Client.Evaluate.
//
// # What this package must NOT do
//
//   - Read or parse tokens (the client owns session access).
//   - Distinguish authentication-missing from authorization-denied in its
//     responses; every denial is the same redirect.
//   - Cache decisions between requests.
package guard
