package portalauth

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Logout clears the persisted session unconditionally and then notifies
// the upstream console API. The local clear never waits on the network: a
// failed or unreachable remote revocation leaves the user signed out
// locally, and the divergence is logged and counted rather than surfaced
// as a failure.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil || c.store == nil {
		return ErrClientNotReady
	}

	sess, err := c.store.Load(ctx)
	if err != nil {
		sess = nil
	}

	if err := c.store.Clear(ctx); err != nil {
		return err
	}

	c.metricInc(MetricLogout)
	userID := ""
	token := ""
	if sess != nil {
		userID = sess.User.ID
		token = sess.Token
	}

	if token != "" && c.config.Client.BaseURL != "" {
		if err := c.postJSON(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil); err != nil {
			c.metricInc(MetricLogoutRemoteFailure)
			c.logger.Warn("remote logout failed, local session already cleared",
				zap.String("user_id", userID),
				zap.Error(err))
			c.auditEmit(ctx, AuditEvent{
				EventType: "logout",
				UserID:    userID,
				Success:   true,
				Error:     errorText(err),
				Metadata:  map[string]string{"remote_revocation": "failed"},
			})
			return nil
		}
	}

	c.auditEmit(ctx, AuditEvent{
		EventType: "logout",
		UserID:    userID,
		Success:   true,
	})
	c.logger.Info("logout completed", zap.String("user_id", userID))
	return nil
}
