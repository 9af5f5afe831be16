package portalauth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// IntrospectToken decodes the stored bearer token for display purposes:
// account pages showing when the session was issued and when it lapses.
// The signature is NOT verified — the upstream API is the only party that
// validates tokens — so the result must never feed an authorization
// decision; guards only ever test token presence.
//
// IntrospectToken may return an error when input validation, dependency calls, or security checks fail.
// IntrospectToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) IntrospectToken(ctx context.Context) (*TokenInfo, error) {
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

	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(sess.Token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: token is not a JWT: %v", ErrRequestRejected, err)
	}

	info := &TokenInfo{}
	if sub, err := token.Claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := token.Claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
