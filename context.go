package portalauth

import "context"

type clientIPContextKey struct{}
type requestPathContextKey struct{}
type userAgentContextKey struct{}

// WithClientIP attaches the caller’s IP address to ctx. The Client records
// it on audit events emitted for login, logout, and guard decisions.
//
//	Docs: docs/audit.md
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithRequestPath attaches the guarded route path to ctx so guard audit
// events can name the route that was evaluated.
//
//	Docs: docs/audit.md, docs/guards.md
func WithRequestPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, requestPathContextKey{}, path)
}

// WithUserAgent attaches the HTTP User-Agent string to ctx for audit
// enrichment.
//
//	Docs: docs/audit.md
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return context.WithValue(ctx, userAgentContextKey{}, userAgent)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func requestPathFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	path, _ := ctx.Value(requestPathContextKey{}).(string)
	return path
}

func userAgentFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	userAgent, _ := ctx.Value(userAgentContextKey{}).(string)
	return userAgent
}
