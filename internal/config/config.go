package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Workspace struct {
		IdleTimeout   time.Duration
		SweepInterval time.Duration
		Max           int
	}
	Log struct {
		Level  string
		Format string
	}
	LogoEndpoint    string
	NotifyDuration  time.Duration
	SessionLifetime time.Duration
	InsecureCookies bool
}

// Load reads config from environment (LINKLY_ prefix) and optional linkly.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LINKLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("linkly")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "linkly.db")
	v.SetDefault("session.lifetime", "720h")
	v.SetDefault("workspace.idle_timeout", "2h")
	v.SetDefault("workspace.sweep_interval", "1m")
	v.SetDefault("workspace.max", 10000)
	v.SetDefault("logo.endpoint", "https://logo.clearbit.com/")
	v.SetDefault("notify.duration", "4s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Workspace.Max = v.GetInt("workspace.max")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.LogoEndpoint = v.GetString("logo.endpoint")
	cfg.InsecureCookies = v.GetBool("insecure_cookies")

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"session.lifetime", &cfg.SessionLifetime},
		{"workspace.idle_timeout", &cfg.Workspace.IdleTimeout},
		{"workspace.sweep_interval", &cfg.Workspace.SweepInterval},
		{"notify.duration", &cfg.NotifyDuration},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envName(d.key), err)
		}
		*d.dst = parsed
	}

	switch cfg.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("LINKLY_DB_DRIVER must be sqlite3, mysql, or postgres (got %q)", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("LINKLY_DB_DSN is required")
	}
	if cfg.Workspace.SweepInterval <= 0 {
		return nil, fmt.Errorf("LINKLY_WORKSPACE_SWEEP_INTERVAL must be positive")
	}
	if cfg.Workspace.Max < 0 {
		return nil, fmt.Errorf("LINKLY_WORKSPACE_MAX must not be negative")
	}
	if cfg.NotifyDuration < 0 {
		return nil, fmt.Errorf("LINKLY_NOTIFY_DURATION must not be negative")
	}
	switch cfg.Log.Format {
	case "json", "console":
	default:
		return nil, fmt.Errorf("LINKLY_LOG_FORMAT must be json or console (got %q)", cfg.Log.Format)
	}

	return cfg, nil
}

func envName(key string) string {
	return "LINKLY_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
