package session

import (
	"context"
	"errors"
)

// ErrStoreUnavailable is returned when the backing storage cannot be reached
// or written. Guard evaluation treats it as the absent session (fail closed).
var ErrStoreUnavailable = errors.New("session store unavailable")

// Store is the durable persistence contract for the current session. It is
// the single source of truth read by guards; no caching layer sits in front
// of it, and every guard evaluation re-reads it.
//
// Load returns (nil, nil) — the absent session — when no token is stored or
// when persisted fields fail to parse; decode failures never escape this
// boundary. Save persists all fields atomically. Clear removes the session
// fields and is idempotent. EnsureSchema compares the stored storageVersion
// tag to currentVersion and, on mismatch, wipes the record and writes the new
// tag, reporting wiped=true; it must run before any other store operation is
// trusted in the current process lifetime.
type Store interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
	EnsureSchema(ctx context.Context, currentVersion int) (wiped bool, err error)
}
