package portalauth

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portalauth.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadConfigReadsFileValues(t *testing.T) {
	path := writeConfigFile(t, `
routes:
  login: /signin
  home: /start
  super_user_home: /admin/dashboard
roles:
  super_user: root
  writer: author
  business_admin: COMPANY_ADMIN
  developer:
    - root
    - staff
session:
  redis_key: "console:session"
  schema_version: 7
client:
  base_url: https://api.example.com
  timeout: 3s
audit:
  enabled: true
  buffer_size: 64
  drop_if_full: false
metrics:
  enabled: true
  enable_latency_histograms: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Routes.Login != "/signin" || cfg.Routes.Home != "/start" || cfg.Routes.SuperUserHome != "/admin/dashboard" {
		t.Errorf("routes not loaded: %+v", cfg.Routes)
	}
	if cfg.Roles.SuperUser != "root" || cfg.Roles.Writer != "author" || cfg.Roles.BusinessAdmin != "COMPANY_ADMIN" {
		t.Errorf("roles not loaded: %+v", cfg.Roles)
	}
	if len(cfg.Roles.Developer) != 2 || cfg.Roles.Developer[0] != "root" || cfg.Roles.Developer[1] != "staff" {
		t.Errorf("developer allowlist not loaded: %v", cfg.Roles.Developer)
	}
	if cfg.Session.RedisKey != "console:session" || cfg.Session.SchemaVersion != 7 {
		t.Errorf("session config not loaded: %+v", cfg.Session)
	}
	if cfg.Client.BaseURL != "https://api.example.com" || cfg.Client.Timeout != 3*time.Second {
		t.Errorf("client config not loaded: %+v", cfg.Client)
	}
	if !cfg.Audit.Enabled || cfg.Audit.BufferSize != 64 || cfg.Audit.DropIfFull {
		t.Errorf("audit config not loaded: %+v", cfg.Audit)
	}
	if !cfg.Metrics.Enabled || !cfg.Metrics.EnableLatencyHistograms {
		t.Errorf("metrics config not loaded: %+v", cfg.Metrics)
	}
}

func TestLoadConfigAppliesDefaultsForOmittedKeys(t *testing.T) {
	path := writeConfigFile(t, `
client:
  base_url: https://api.example.com
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	def := DefaultConfig()
	if cfg.Routes != def.Routes {
		t.Errorf("routes = %+v, want defaults %+v", cfg.Routes, def.Routes)
	}
	if cfg.Roles.SuperUser != def.Roles.SuperUser || cfg.Roles.Writer != def.Roles.Writer {
		t.Errorf("roles = %+v, want defaults %+v", cfg.Roles, def.Roles)
	}
	if cfg.Session != def.Session {
		t.Errorf("session = %+v, want defaults %+v", cfg.Session, def.Session)
	}
	if cfg.Client.Timeout != def.Client.Timeout {
		t.Errorf("timeout = %v, want default %v", cfg.Client.Timeout, def.Client.Timeout)
	}
	if cfg.Client.BaseURL != "https://api.example.com" {
		t.Errorf("base_url = %q", cfg.Client.BaseURL)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
routes:
  login: login-without-slash
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for relative login path")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
