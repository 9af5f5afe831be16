package portalauth

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig reads a YAML config file into a [Config], applying
// [DefaultConfig] values for anything the file omits. Environment variables
// override file values (dots become underscores, upper-cased: routes.login →
// ROUTES_LOGIN). The result is validated before it is returned.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg.Routes.Login = v.GetString("routes.login")
	cfg.Routes.Home = v.GetString("routes.home")
	cfg.Routes.SuperUserHome = v.GetString("routes.super_user_home")

	cfg.Roles.SuperUser = v.GetString("roles.super_user")
	cfg.Roles.Writer = v.GetString("roles.writer")
	cfg.Roles.BusinessAdmin = v.GetString("roles.business_admin")
	cfg.Roles.Developer = v.GetStringSlice("roles.developer")

	cfg.Session.RedisKey = v.GetString("session.redis_key")
	cfg.Session.SchemaVersion = v.GetInt("session.schema_version")

	cfg.Client.BaseURL = v.GetString("client.base_url")
	cfg.Client.Timeout = v.GetDuration("client.timeout")

	cfg.Audit.Enabled = v.GetBool("audit.enabled")
	cfg.Audit.BufferSize = v.GetInt("audit.buffer_size")
	cfg.Audit.DropIfFull = v.GetBool("audit.drop_if_full")

	cfg.Metrics.Enabled = v.GetBool("metrics.enabled")
	cfg.Metrics.EnableLatencyHistograms = v.GetBool("metrics.enable_latency_histograms")

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("routes.login", cfg.Routes.Login)
	v.SetDefault("routes.home", cfg.Routes.Home)
	v.SetDefault("routes.super_user_home", cfg.Routes.SuperUserHome)

	v.SetDefault("roles.super_user", cfg.Roles.SuperUser)
	v.SetDefault("roles.writer", cfg.Roles.Writer)
	v.SetDefault("roles.business_admin", cfg.Roles.BusinessAdmin)
	v.SetDefault("roles.developer", cfg.Roles.Developer)

	v.SetDefault("session.redis_key", cfg.Session.RedisKey)
	v.SetDefault("session.schema_version", cfg.Session.SchemaVersion)

	v.SetDefault("client.base_url", cfg.Client.BaseURL)
	v.SetDefault("client.timeout", cfg.Client.Timeout)

	v.SetDefault("audit.enabled", cfg.Audit.Enabled)
	v.SetDefault("audit.buffer_size", cfg.Audit.BufferSize)
	v.SetDefault("audit.drop_if_full", cfg.Audit.DropIfFull)

	v.SetDefault("metrics.enabled", cfg.Metrics.Enabled)
	v.SetDefault("metrics.enable_latency_histograms", cfg.Metrics.EnableLatencyHistograms)
}
