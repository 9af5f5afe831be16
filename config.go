package portalauth

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/portalauth/portalauth/session"
)

// Config defines a public type used by portalauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Routes  RoutesConfig
	Roles   RolesConfig
	Session SessionConfig
	Client  ClientConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
ROUTES CONFIG
====================================
*/

// RoutesConfig defines a public type used by portalauth APIs.
//
// RoutesConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RoutesConfig struct {
	// Login is the redirect destination for every denied navigation.
	// Authentication-missing and authorization-denied are deliberately not
	// distinguished to the viewer.
	Login string
	// Home is the generic home path resolved for the writer role.
	Home string
	// SuperUserHome is the super-user dashboard path.
	SuperUserHome string
}

/*
====================================
ROLES CONFIG
====================================
*/

// RolesConfig defines a public type used by portalauth APIs.
//
// RolesConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RolesConfig struct {
	SuperUser     string
	Writer        string
	BusinessAdmin string
	// Developer optionally restricts developer-level access to the listed
	// global roles. Empty keeps the coarse rule: any global role qualifies.
	Developer []string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by portalauth APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// RedisKey is the hash key used when the store is built from a Redis
	// client. Empty selects [session.DefaultRedisKey].
	RedisKey string
	// SchemaVersion tags the persisted layout. A stored record carrying any
	// other tag is wiped as a unit by EnsureSchema before guards read it.
	SchemaVersion int
}

/*
====================================
CLIENT CONFIG
====================================
*/

// ClientConfig defines a public type used by portalauth APIs.
//
// ClientConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ClientConfig struct {
	// BaseURL locates the opaque upstream API serving /login, /logout,
	// /profile, /forgot-password, /reset-password, and /change-password.
	BaseURL string
	// Timeout bounds each wire call. Guard evaluation never touches the
	// wire, so this only affects the asynchronous session flows.
	Timeout time.Duration
}

// AuditConfig defines a public type used by portalauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by portalauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULTS
====================================
*/

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return Config{
		Routes: RoutesConfig{
			Login:         "/login",
			Home:          "/",
			SuperUserHome: "/su/dashboard",
		},
		Roles: RolesConfig{
			SuperUser:     "su",
			Writer:        "writer",
			BusinessAdmin: "ADMIN_EMPRESA",
			Developer:     nil,
		},
		Session: SessionConfig{
			RedisKey:      session.DefaultRedisKey,
			SchemaVersion: session.CurrentSchemaVersion,
		},
		Client: ClientConfig{
			BaseURL: "",
			Timeout: 10 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Roles.Developer = cloneStrings(cfg.Roles.Developer)
	return out
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	for _, p := range []struct {
		name string
		path string
	}{
		{"Routes.Login", c.Routes.Login},
		{"Routes.Home", c.Routes.Home},
		{"Routes.SuperUserHome", c.Routes.SuperUserHome},
	} {
		if p.path == "" {
			return errors.New(p.name + " must not be empty")
		}
		if !strings.HasPrefix(p.path, "/") {
			return errors.New(p.name + " must be an absolute path")
		}
	}

	if c.Roles.SuperUser == "" {
		return errors.New("Roles.SuperUser must not be empty")
	}
	if c.Roles.Writer == "" {
		return errors.New("Roles.Writer must not be empty")
	}
	if c.Roles.BusinessAdmin == "" {
		return errors.New("Roles.BusinessAdmin must not be empty")
	}

	if c.Session.SchemaVersion <= 0 {
		return errors.New("Session.SchemaVersion must be > 0")
	}

	if c.Client.BaseURL != "" {
		u, err := url.Parse(c.Client.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New("Client.BaseURL must be an absolute URL")
		}
	}
	if c.Client.Timeout <= 0 {
		return errors.New("Client.Timeout must be > 0")
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit.BufferSize must be > 0 when audit is enabled")
	}

	return nil
}
