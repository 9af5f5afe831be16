package portalauth

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email                string `json:"email"`
	Token                string `json:"token"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type changePasswordRequest struct {
	CurrentPassword         string `json:"currentPassword"`
	NewPassword             string `json:"newPassword"`
	NewPasswordConfirmation string `json:"newPasswordConfirmation"`
}

// ForgotPassword asks the upstream API to start a password recovery for
// email. The response is deliberately indistinguishable for known and
// unknown addresses; only transport and validation failures surface.
//
// ForgotPassword may return an error when input validation, dependency calls, or security checks fail.
// ForgotPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if c == nil {
		return ErrClientNotReady
	}
	if email == "" {
		return ErrRequestRejected
	}

	if err := c.postJSON(ctx, http.MethodPost, "/api/auth/forgot-password", "", forgotPasswordRequest{Email: email}, nil); err != nil {
		return err
	}

	c.metricInc(MetricPasswordResetRequest)
	c.auditEmit(ctx, AuditEvent{
		EventType: "password_reset_request",
		UserID:    email,
		Success:   true,
	})
	return nil
}

// ResetPassword completes a recovery started by [Client.ForgotPassword]
// using the emailed reset token. A confirmation mismatch is rejected
// before the wire is touched. It never touches the local session: the
// user signs in again with the new password.
//
// ResetPassword may return an error when input validation, dependency calls, or security checks fail.
// ResetPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ResetPassword(ctx context.Context, email, token, newPassword, confirmation string) error {
	if c == nil {
		return ErrClientNotReady
	}
	if email == "" || token == "" || newPassword == "" {
		return ErrRequestRejected
	}
	if newPassword != confirmation {
		return ErrRequestRejected
	}

	if err := c.postJSON(ctx, http.MethodPost, "/api/auth/reset-password", "", resetPasswordRequest{
		Email:                email,
		Token:                token,
		Password:             newPassword,
		PasswordConfirmation: confirmation,
	}, nil); err != nil {
		return err
	}

	c.metricInc(MetricPasswordResetConfirm)
	c.auditEmit(ctx, AuditEvent{
		EventType: "password_reset_confirm",
		Success:   true,
	})
	return nil
}

// ChangePassword changes the signed-in user's password and then clears
// the local session, since upstream revokes all outstanding tokens on a
// password change.
//
// ChangePassword may return an error when input validation, dependency calls, or security checks fail.
// ChangePassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmation string) error {
	if c == nil || c.store == nil {
		return ErrClientNotReady
	}
	if currentPassword == "" || newPassword == "" {
		return ErrRequestRejected
	}
	if newPassword != confirmation {
		return ErrRequestRejected
	}

	sess, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrNotAuthenticated
	}

	if err := c.postJSON(ctx, http.MethodPost, "/api/auth/change-password", sess.Token, changePasswordRequest{
		CurrentPassword:         currentPassword,
		NewPassword:             newPassword,
		NewPasswordConfirmation: confirmation,
	}, nil); err != nil {
		c.metricInc(MetricPasswordChangeFailure)
		c.auditEmit(ctx, AuditEvent{
			EventType: "password_change",
			UserID:    sess.User.ID,
			Success:   false,
			Error:     errorText(err),
		})
		return err
	}

	if err := c.store.Clear(ctx); err != nil {
		return err
	}

	c.metricInc(MetricPasswordChangeSuccess)
	c.auditEmit(ctx, AuditEvent{
		EventType: "password_change",
		UserID:    sess.User.ID,
		Success:   true,
	})
	c.logger.Info("password changed, session cleared", zap.String("user_id", sess.User.ID))
	return nil
}
