package portalauth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/portalauth/portalauth/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string            `json:"token"`
	User        session.Profile   `json:"user"`
	Companies   []session.Company `json:"companies"`
	Roles       []string          `json:"roles"`
	Permissions []string          `json:"permissions"`
}

// Login authenticates against the upstream console API and persists the
// resulting session. Concurrent login attempts are sequenced: each attempt
// takes a fresh sequence tag, and only the attempt holding the latest tag
// may commit its result. A superseded attempt returns ErrLoginSuperseded
// and leaves the store untouched, so an earlier response can never
// overwrite a later login.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if c == nil || c.store == nil {
		return nil, ErrClientNotReady
	}
	if email == "" || password == "" {
		c.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	seq := uuid.NewString()
	c.seqMu.Lock()
	c.latestLoginSeq = seq
	c.seqMu.Unlock()

	var resp loginResponse
	err := c.postJSON(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		c.metricInc(MetricLoginFailure)
		c.auditEmit(ctx, AuditEvent{
			EventType: "login",
			UserID:    email,
			Success:   false,
			Error:     errorText(err),
		})
		return nil, err
	}
	if resp.Token == "" {
		c.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	sess := &session.Session{
		Token:          resp.Token,
		User:           resp.User,
		GlobalRoles:    resp.Roles,
		Companies:      resp.Companies,
		Permissions:    resp.Permissions,
		AdminCompanyID: c.adminCompanyID(resp.Companies),
		SchemaVersion:  c.config.Session.SchemaVersion,
	}

	// Commit under the sequence lock so the latest-tag check and the save
	// are one step from the point of view of other login attempts.
	c.seqMu.Lock()
	if c.latestLoginSeq != seq {
		c.seqMu.Unlock()
		c.metricInc(MetricLoginSuperseded)
		c.logger.Debug("login response dropped, superseded by newer attempt",
			zap.String("user_id", resp.User.ID))
		return nil, ErrLoginSuperseded
	}
	saveErr := c.store.Save(ctx, sess)
	c.seqMu.Unlock()

	if saveErr != nil {
		c.metricInc(MetricLoginFailure)
		return nil, saveErr
	}

	c.metricInc(MetricLoginSuccess)
	c.auditEmit(ctx, AuditEvent{
		EventType: "login",
		UserID:    resp.User.ID,
		CompanyID: sess.AdminCompanyID,
		Success:   true,
	})
	c.logger.Info("login succeeded",
		zap.String("user_id", resp.User.ID),
		zap.Int("companies", len(resp.Companies)))

	return &LoginResult{
		Token:     resp.Token,
		User:      resp.User,
		Companies: resp.Companies,
	}, nil
}

// adminCompanyID picks the company the signed-in user administers: the
// first company carrying the configured business-admin role. Zero when
// none does.
func (c *Client) adminCompanyID(companies []session.Company) int64 {
	role := c.config.Roles.BusinessAdmin
	if role == "" {
		return 0
	}
	for _, company := range companies {
		for _, r := range company.Roles {
			if r == role {
				return company.ID
			}
		}
	}
	return 0
}
