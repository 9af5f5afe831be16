package portalauth

import "errors"

var (
	// ErrNotAuthenticated is an exported constant or variable used by the authorization client.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials is an exported constant or variable used by the authorization client.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRequestRejected is an exported constant or variable used by the authorization client.
	ErrRequestRejected = errors.New("request rejected by upstream")
	// ErrUpstreamUnavailable is an exported constant or variable used by the authorization client.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrLoginSuperseded is an exported constant or variable used by the authorization client.
	ErrLoginSuperseded = errors.New("login superseded by a newer attempt")
	// ErrClientNotReady is an exported constant or variable used by the authorization client.
	ErrClientNotReady = errors.New("client not initialized")
)
