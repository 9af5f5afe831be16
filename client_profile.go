package portalauth

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/portalauth/portalauth/session"
)

type profileResponse struct {
	User        session.Profile   `json:"user"`
	Companies   []session.Company `json:"companies"`
	Roles       []string          `json:"roles"`
	Permissions []string          `json:"permissions"`
}

// RefreshProfile re-fetches the signed-in user's profile, roles, and
// company grants from the upstream API and merges them into the persisted
// session. The token is never replaced by a refresh. A 401 from upstream
// means the token is no longer honoured, so the local session is cleared.
//
// RefreshProfile may return an error when input validation, dependency calls, or security checks fail.
// RefreshProfile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) RefreshProfile(ctx context.Context) (*Session, error) {
	if c == nil || c.store == nil {
		return nil, ErrClientNotReady
	}

	sess, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotAuthenticated
	}

	var resp profileResponse
	if err := c.postJSON(ctx, http.MethodGet, "/api/auth/profile", sess.Token, nil, &resp); err != nil {
		c.metricInc(MetricProfileRefreshFailure)
		if errors.Is(err, ErrInvalidCredentials) {
			// Token revoked upstream: drop the local session too.
			_ = c.store.Clear(ctx)
			c.logger.Info("profile refresh rejected, session cleared",
				zap.String("user_id", sess.User.ID))
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	sess.User = resp.User
	sess.GlobalRoles = resp.Roles
	sess.Permissions = resp.Permissions
	if resp.Companies != nil {
		sess.Companies = resp.Companies
		sess.AdminCompanyID = c.adminCompanyID(resp.Companies)
	}

	if err := c.store.Save(ctx, sess); err != nil {
		c.metricInc(MetricProfileRefreshFailure)
		return nil, err
	}

	c.metricInc(MetricProfileRefreshSuccess)
	c.logger.Debug("profile refreshed", zap.String("user_id", sess.User.ID))
	return sess, nil
}
