package portalauth

import (
	"time"

	"github.com/portalauth/portalauth/session"
)

// Profile is the viewer's identity record. Alias of [session.Profile] so
// integrators only import the root package.
type Profile = session.Profile

// Company is one company association with its scoped roles and permissions.
// Alias of [session.Company].
type Company = session.Company

// Session is the client-held authentication record. Alias of
// [session.Session].
type Session = session.Session

// RouteClass identifies which guard flavor protects a route.
type RouteClass uint8

const (
	// RoutePublicAuth covers the public login/register/forgot/reset pages.
	RoutePublicAuth RouteClass = iota
	// RouteDeveloper covers the super-user console routes.
	RouteDeveloper
	// RouteBusiness covers the per-company business console routes.
	RouteBusiness
)

// String describes the routeclass operation and its observable behavior.
func (c RouteClass) String() string {
	switch c {
	case RoutePublicAuth:
		return "public-auth"
	case RouteDeveloper:
		return "developer"
	case RouteBusiness:
		return "business"
	default:
		return "unknown"
	}
}

// RouteRequirement is the guard input for one navigation attempt. For
// [RouteBusiness] routes, CompanyParam carries the raw companyId path
// parameter; it is parsed during evaluation so that unparseable input fails
// closed in one place.
type RouteRequirement struct {
	Class        RouteClass
	CompanyParam string
}

// Outcome is the terminal result of one guard evaluation.
type Outcome uint8

const (
	// OutcomeAllow renders the destination route.
	OutcomeAllow Outcome = iota
	// OutcomeRedirect issues exactly one redirect; guards never chain.
	OutcomeRedirect
)

// Decision is returned by [Client.Evaluate]. Location is set only when
// Outcome is [OutcomeRedirect].
type Decision struct {
	Outcome  Outcome
	Location string
}

// Allowed reports whether the navigation may proceed to its destination.
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

// LoginResult is returned by [Client.Login]. It carries the upstream token
// and the session fields derived from the login response.
type LoginResult struct {
	Token     string
	User      Profile
	Companies []Company
}

// TokenInfo is the unverified claims peek returned by
// [Client.IntrospectToken]. It exists for display purposes only; guard
// evaluation never consults it and token presence stays the sole
// authentication signal.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
