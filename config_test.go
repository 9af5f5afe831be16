package portalauth

import (
	"strings"
	"testing"
)

func TestConfigDefaultsValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestConfigValidateFailures(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "empty login route",
			mutate:  func(c *Config) { c.Routes.Login = "" },
			wantMsg: "Routes.Login",
		},
		{
			name:    "relative home route",
			mutate:  func(c *Config) { c.Routes.Home = "home" },
			wantMsg: "absolute path",
		},
		{
			name:    "empty superuser role",
			mutate:  func(c *Config) { c.Roles.SuperUser = "" },
			wantMsg: "Roles.SuperUser",
		},
		{
			name:    "empty writer role",
			mutate:  func(c *Config) { c.Roles.Writer = "" },
			wantMsg: "Roles.Writer",
		},
		{
			name:    "empty business admin role",
			mutate:  func(c *Config) { c.Roles.BusinessAdmin = "" },
			wantMsg: "Roles.BusinessAdmin",
		},
		{
			name:    "zero schema version",
			mutate:  func(c *Config) { c.Session.SchemaVersion = 0 },
			wantMsg: "Session.SchemaVersion",
		},
		{
			name:    "relative base URL",
			mutate:  func(c *Config) { c.Client.BaseURL = "api.example.com" },
			wantMsg: "Client.BaseURL",
		},
		{
			name:    "zero client timeout",
			mutate:  func(c *Config) { c.Client.Timeout = 0 },
			wantMsg: "Client.Timeout",
		},
		{
			name: "audit enabled without buffer",
			mutate: func(c *Config) {
				c.Audit.Enabled = true
				c.Audit.BufferSize = 0
			},
			wantMsg: "Audit.BufferSize",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestConfigCloneIsolation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Roles.Developer = []string{"su"}

	clone := cloneConfig(cfg)
	clone.Roles.Developer[0] = "mutated"

	if cfg.Roles.Developer[0] != "su" {
		t.Fatal("cloneConfig must deep-copy role slices")
	}
}

func TestBuilderRequiresStoreOrRedis(t *testing.T) {
	_, err := New().Build()
	if err == nil || !strings.Contains(err.Error(), "store or redis") {
		t.Fatalf("expected missing store error, got %v", err)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithStore(newMemoryTestStore())

	if _, err := b.Build(); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("second build must fail")
	}
}
