package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/insightworks/insights-cli/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "Insights", cfg.AppName)
	require.Equal(t, "http://127.0.0.1:8000", cfg.API.BaseURL)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("INSIGHTS_API_BASE_URL", "https://insights.example.com/")
	t.Setenv("INSIGHTS_HTTP_TIMEOUT", "3s")
	t.Setenv("INSIGHTS_STATE_DIR", "/tmp/insights-state")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "https://insights.example.com", cfg.API.BaseURL, "trailing slash must be stripped")
	require.Equal(t, 3*time.Second, cfg.API.Timeout)

	tokenFile, err := cfg.State.TokenFile()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/tmp/insights-state", "tokens.json"), tokenFile)
}

func TestSanitize_TimeoutGuardrail(t *testing.T) {
	cfg := &config.Config{}
	cfg.API.Timeout = -1
	cfg.Sanitize()
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
}
