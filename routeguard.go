package portalauth

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Evaluate decides whether the current session may enter a route. The
// store is re-read on every call; there is no decision cache, so a logout
// or schema wipe takes effect on the next evaluation. Every failure mode
// is fail closed: an unreachable store, an unparseable record, and a
// malformed company identifier all behave exactly like the absent
// session.
//
// Evaluate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Evaluate(ctx context.Context, req RouteRequirement) Decision {
	start := time.Now()
	decision := c.evaluate(ctx, req)

	if c != nil {
		if c.metrics.LatencyEnabled() {
			c.metrics.Observe(MetricGuardLatency, time.Since(start))
		}
		if decision.Allowed() {
			c.metricInc(MetricGuardAllow)
		} else {
			c.metricInc(MetricGuardRedirect)
		}
		event := AuditEvent{
			EventType: "guard_" + req.Class.String(),
			Success:   decision.Allowed(),
			Metadata:  guardMetadata(req, decision),
		}
		if req.Class == RouteBusiness {
			// Unparseable params stay at 0; the raw value is in the metadata.
			if id, err := strconv.ParseInt(req.CompanyParam, 10, 64); err == nil {
				event.CompanyID = id
			}
		}
		c.auditEmit(ctx, event)
	}

	return decision
}

func (c *Client) evaluate(ctx context.Context, req RouteRequirement) Decision {
	if c == nil || c.store == nil {
		return c.deny(req)
	}

	sess, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn("session load failed during guard evaluation, failing closed",
			zap.String("route_class", req.Class.String()),
			zap.Error(err))
		sess = nil
	}

	switch req.Class {
	case RoutePublicAuth:
		// Signed-in viewers with a recognized home are bounced away from
		// auth pages. Everyone else, including an authenticated viewer no
		// role claims a destination for, stays in place.
		if home := c.policy.RedirectHomeFor(sess); home != "" {
			return Decision{Outcome: OutcomeRedirect, Location: home}
		}
		return Decision{Outcome: OutcomeAllow}

	case RouteDeveloper:
		if !sess.Authenticated() || !c.policy.IsDeveloper(sess) {
			return c.deny(req)
		}
		return Decision{Outcome: OutcomeAllow}

	case RouteBusiness:
		if !sess.Authenticated() {
			return c.deny(req)
		}
		companyID, err := strconv.ParseInt(req.CompanyParam, 10, 64)
		if err != nil {
			return c.deny(req)
		}
		if !c.policy.HasBusinessRoleFor(sess, companyID) {
			return c.deny(req)
		}
		return Decision{Outcome: OutcomeAllow}

	default:
		return c.deny(req)
	}
}

func (c *Client) deny(_ RouteRequirement) Decision {
	login := "/login"
	if c != nil && c.config.Routes.Login != "" {
		login = c.config.Routes.Login
	}
	return Decision{Outcome: OutcomeRedirect, Location: login}
}

// HomeRedirect resolves the landing path for the current session: the
// superuser dashboard for the superuser role, the writer home for the
// writer role, and "" when no role claims a destination or nobody is
// signed in.
func (c *Client) HomeRedirect(ctx context.Context) (string, error) {
	if c == nil || c.store == nil {
		return "", ErrClientNotReady
	}

	sess, err := c.store.Load(ctx)
	if err != nil {
		return "", err
	}
	return c.policy.RedirectHomeFor(sess), nil
}

func guardMetadata(req RouteRequirement, decision Decision) map[string]string {
	md := map[string]string{"outcome": "allow"}
	if !decision.Allowed() {
		md["outcome"] = "redirect"
		md["location"] = decision.Location
	}
	if req.CompanyParam != "" {
		md["company_param"] = req.CompanyParam
	}
	return md
}
