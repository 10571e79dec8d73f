package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/workbench/pkg/panel"
	"github.com/aretw0/workbench/pkg/validate"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, panel.WordCounter, cfg.DefaultPanel)
	assert.Equal(t, 1500*time.Millisecond, time.Duration(cfg.Tools.FeedbackDelay))
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "workbench.yaml", `
log_level: debug
default_panel: json-formatter
http:
  port: 9090
mcp:
  transport: sse
redis:
  addr: localhost:6379
  ttl: 1h
tools:
  page_size: letter
  qr_size: 256
  feedback_delay: 2s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, panel.JSONFormatter, cfg.DefaultPanel)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, TransportSSE, cfg.MCP.Transport)
	assert.Equal(t, 8081, cfg.MCP.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, time.Duration(cfg.Redis.TTL))
	assert.Equal(t, "workbench:session:", cfg.Redis.Prefix)
	assert.Equal(t, "letter", cfg.Tools.PageSize)
	assert.Equal(t, 256, cfg.Tools.QRSize)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.Tools.FeedbackDelay))
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "workbench.json", `{"http":{"port":7000},"tools":{"feedback_delay":"250ms"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, 250*time.Millisecond, time.Duration(cfg.Tools.FeedbackDelay))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvRedisAddr, "redis:6379")
	t.Setenv(validate.EnvMaxInputSize, "2048")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2048, cfg.Tools.MaxInputSize)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"Bad YAML", "http: [", "failed to parse"},
		{"Unknown Panel", "default_panel: nope", "unknown default_panel"},
		{"Bad Page Size", "tools:\n  page_size: a3", "page_size"},
		{"Bad Transport", "mcp:\n  transport: grpc", "transport"},
		{"Bad Level", "log_level: loud", "unknown log level"},
		{"Bad Duration", "tools:\n  feedback_delay: soon", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "workbench.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
