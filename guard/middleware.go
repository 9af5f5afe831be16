package guard

import (
	"net/http"

	portalauth "github.com/portalauth/portalauth"
)

// DefaultCompanyParam is the route parameter read by [Business] when none
// is given.
const DefaultCompanyParam = "companyId"

// PublicAuth guards authentication pages: the login form, password
// recovery, and similar. A signed-in viewer whose role claims a home is
// redirected there; unauthenticated and home-less viewers stay in place.
func PublicAuth(client *portalauth.Client) func(http.Handler) http.Handler {
	return wrap(client, func(*http.Request) portalauth.RouteRequirement {
		return portalauth.RouteRequirement{Class: portalauth.RoutePublicAuth}
	})
}

// Developer guards routes that require a signed-in developer session.
func Developer(client *portalauth.Client) func(http.Handler) http.Handler {
	return wrap(client, func(*http.Request) portalauth.RouteRequirement {
		return portalauth.RouteRequirement{Class: portalauth.RouteDeveloper}
	})
}

// Business guards company-scoped routes. companyParam names the path
// parameter carrying the company identifier; "" selects
// [DefaultCompanyParam]. A missing or malformed parameter denies.
func Business(client *portalauth.Client, companyParam string) func(http.Handler) http.Handler {
	if companyParam == "" {
		companyParam = DefaultCompanyParam
	}
	return wrap(client, func(r *http.Request) portalauth.RouteRequirement {
		return portalauth.RouteRequirement{
			Class:        portalauth.RouteBusiness,
			CompanyParam: r.PathValue(companyParam),
		}
	})
}

// Landing redirects the viewer to the home their role claims, or to
// fallback when no role claims one.
func Landing(client *portalauth.Client, fallback string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		home, err := client.HomeRedirect(r.Context())
		if err != nil || home == "" {
			home = fallback
		}
		http.Redirect(w, r, home, http.StatusFound)
	})
}

func wrap(client *portalauth.Client, requirement func(*http.Request) portalauth.RouteRequirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := portalauth.WithRequestPath(r.Context(), r.URL.Path)
			ctx = portalauth.WithClientIP(ctx, r.RemoteAddr)
			if ua := r.UserAgent(); ua != "" {
				ctx = portalauth.WithUserAgent(ctx, ua)
			}

			decision := client.Evaluate(ctx, requirement(r))
			if !decision.Allowed() {
				http.Redirect(w, r, decision.Location, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
