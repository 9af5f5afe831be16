package portalauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/portalauth/portalauth/session"
)

func TestIntrospectTokenDecodesClaims(t *testing.T) {
	issued := time.Now().Add(-time.Minute).Truncate(time.Second)
	expires := issued.Add(time.Hour)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"iat": issued.Unix(),
		"exp": expires.Unix(),
	}).SignedString([]byte("upstream-only-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	store := newMemoryTestStore()
	client := newTestClient(t, nil, store)
	ctx := context.Background()

	if err := store.Save(ctx, &session.Session{Token: signed}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := client.IntrospectToken(ctx)
	if err != nil {
		t.Fatalf("introspect failed: %v", err)
	}
	if info.Subject != "u1" {
		t.Fatalf("expected subject u1, got %q", info.Subject)
	}
	if !info.IssuedAt.Equal(issued) || !info.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected times: %+v", info)
	}
}

func TestIntrospectTokenWithoutSession(t *testing.T) {
	client := newTestClient(t, nil, nil)

	if _, err := client.IntrospectToken(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestIntrospectOpaqueTokenRejected(t *testing.T) {
	store := newMemoryTestStore()
	client := newTestClient(t, nil, store)
	ctx := context.Background()

	if err := store.Save(ctx, &session.Session{Token: "opaque-token"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := client.IntrospectToken(ctx); !errors.Is(err, ErrRequestRejected) {
		t.Fatalf("expected ErrRequestRejected for non-JWT token, got %v", err)
	}
}
