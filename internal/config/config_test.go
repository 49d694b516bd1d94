package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "sqlite3", cfg.DB.Driver)
	assert.Equal(t, "linkly.db", cfg.DB.DSN)
	assert.Equal(t, 720*time.Hour, cfg.SessionLifetime)
	assert.Equal(t, 2*time.Hour, cfg.Workspace.IdleTimeout)
	assert.Equal(t, time.Minute, cfg.Workspace.SweepInterval)
	assert.Equal(t, 10000, cfg.Workspace.Max)
	assert.Equal(t, 4*time.Second, cfg.NotifyDuration)
	assert.Equal(t, "https://logo.clearbit.com/", cfg.LogoEndpoint)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.InsecureCookies)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LINKLY_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("LINKLY_DB_DRIVER", "postgres")
	t.Setenv("LINKLY_DB_DSN", "postgres://localhost/linkly")
	t.Setenv("LINKLY_WORKSPACE_IDLE_TIMEOUT", "15m")
	t.Setenv("LINKLY_NOTIFY_DURATION", "0s")
	t.Setenv("LINKLY_INSECURE_COOKIES", "true")
	t.Setenv("LINKLY_LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://localhost/linkly", cfg.DB.DSN)
	assert.Equal(t, 15*time.Minute, cfg.Workspace.IdleTimeout)
	assert.Equal(t, time.Duration(0), cfg.NotifyDuration)
	assert.True(t, cfg.InsecureCookies)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{name: "bad driver", env: map[string]string{"LINKLY_DB_DRIVER": "oracle"}, wantMsg: "LINKLY_DB_DRIVER"},
		{name: "bad lifetime", env: map[string]string{"LINKLY_SESSION_LIFETIME": "forever"}, wantMsg: "LINKLY_SESSION_LIFETIME"},
		{name: "zero sweep", env: map[string]string{"LINKLY_WORKSPACE_SWEEP_INTERVAL": "0s"}, wantMsg: "LINKLY_WORKSPACE_SWEEP_INTERVAL"},
		{name: "bad log format", env: map[string]string{"LINKLY_LOG_FORMAT": "xml"}, wantMsg: "LINKLY_LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
