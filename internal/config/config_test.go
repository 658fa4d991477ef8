package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10001, cfg.Server.Port)
	assert.Equal(t, ":10001", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: 127.0.0.1
  port: 9000
  read_timeout: 5s
logging:
  level: debug
metrics:
  path: /internal/metrics
`)
	t.Setenv("MRP_SERVER_PORT", "9100")
	t.Setenv("MRP_LOGGING_FORMAT", "text")
	t.Setenv("MRP_TRACING_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	// env beats file
	assert.Equal(t, 9100, cfg.Server.Port)
	// file beats default
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/internal/metrics", cfg.Metrics.Path)
	// untouched defaults survive
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "console", cfg.Logging.Output)
	// env only
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "127.0.0.1:9100", cfg.Server.Addr())
}

func TestLoad_FileFromEnvironment(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 8123\n")
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8123, cfg.Server.Port)
}

func TestLoad_IgnoresUnprefixedVariables(t *testing.T) {
	t.Setenv("PORT", "1")
	t.Setenv("PATH", "/usr/bin")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10001, cfg.Server.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		env    map[string]string
		noFile bool
	}{
		{name: "missing file", noFile: true},
		{name: "unknown key", file: "server:\n  prot: 1\n"},
		{name: "malformed yaml", file: "server: [\n"},
		{name: "bad duration", file: "server:\n  read_timeout: soon\n"},
		{name: "bad env value", env: map[string]string{"MRP_SERVER_PORT": "eighty"}},
		{name: "invalid after merge", env: map[string]string{"MRP_SERVER_PORT": "70000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			switch {
			case tt.noFile:
				path = filepath.Join(t.TempDir(), "absent.yaml")
			case tt.file != "":
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(path)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "invalid server port: 0"},
		{"port too high", func(c *Config) { c.Server.Port = 65536 }, "invalid server port: 65536"},
		{"read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "server read timeout must be positive"},
		{"write timeout", func(c *Config) { c.Server.WriteTimeout = -time.Second }, "server write timeout must be positive"},
		{"shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "server shutdown timeout must be positive"},
		{"idle timeout", func(c *Config) { c.Server.IdleTimeout = -1 }, "server idle timeout must not be negative"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, `invalid log level: "loud"`},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, `invalid log format: "xml"`},
		{"log output", func(c *Config) { c.Logging.Output = "syslog" }, `invalid log output: "syslog"`},
		{"file output without path", func(c *Config) { c.Logging.Output = "file"; c.Logging.FilePath = "" }, `log file path required for output "file"`},
		{"tracing without service", func(c *Config) { c.Tracing.Enabled = true; c.Tracing.ServiceName = "" }, "tracing service name must be set when tracing is enabled"},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, `metrics path must start with '/': "metrics"`},
		{"metrics path ignored when disabled", func(c *Config) { c.Metrics.Enabled = false; c.Metrics.Path = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
