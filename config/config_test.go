package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/wistia/wistia"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			Password: "abc1234567890",
			BaseURL:  wistia.DefaultBaseURL,
			Timeout:  30 * time.Second,
			Debug:    "off",
		},
		Output:      OutputConfig{Format: "text"},
		Logging:     LoggingConfig{Level: "info", Format: "console"},
		Concurrency: 10,
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:        "missing password",
			mutate:      func(c *Config) { c.API.Password = "" },
			wantErr:     true,
			errContains: "api.password",
		},
		{
			name:        "placeholder password",
			mutate:      func(c *Config) { c.API.Password = "your-api-password-here" },
			wantErr:     true,
			errContains: "api.password",
		},
		{
			name:        "invalid debug mode",
			mutate:      func(c *Config) { c.API.Debug = "loud" },
			wantErr:     true,
			errContains: "api.debug",
		},
		{
			name:        "zero timeout",
			mutate:      func(c *Config) { c.API.Timeout = 0 },
			wantErr:     true,
			errContains: "api.timeout",
		},
		{
			name:        "concurrency too high",
			mutate:      func(c *Config) { c.Concurrency = 50 },
			wantErr:     true,
			errContains: "concurrency",
		},
		{
			name:        "invalid output",
			mutate:      func(c *Config) { c.Output.Format = "xml" },
			wantErr:     true,
			errContains: "output format",
		},
		{
			name:        "invalid logging level",
			mutate:      func(c *Config) { c.Logging.Level = "verbose" },
			wantErr:     true,
			errContains: "logging level",
		},
		{
			name:        "empty preset",
			mutate:      func(c *Config) { c.Filter.Presets = map[string]string{"long": " "} },
			wantErr:     true,
			errContains: "filter.presets.long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, strings.TrimSpace(`
api:
  password: from-file
  timeout: 10s
  debug: summary
  breaker:
    enabled: true
concurrency: 4
output:
  format: json
filter:
  presets:
    long: Duration > 600
`))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.API.Password)
	assert.Equal(t, wistia.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, wistia.DebugSummary, cfg.DebugMode())
	assert.True(t, cfg.API.Breaker.Enabled)
	assert.Equal(t, uint32(5), cfg.API.Breaker.ConsecutiveFailures)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)

	expression, err := cfg.Preset("long")
	require.NoError(t, err)
	assert.Equal(t, "Duration > 600", expression)

	_, err = cfg.Preset("missing")
	assert.Error(t, err)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "api:\n  password: from-file\n")
	t.Setenv("WISTIA_API_PASSWORD", "from-env")
	t.Setenv("WISTIA_CONCURRENCY", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Password)
	assert.Equal(t, 7, cfg.Concurrency)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := writeConfig(t, "api:\n  password: x\nlogging:\n  level: chatty\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WISTIA_TEST_DOTENV=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("WISTIA_TEST_DOTENV") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("WISTIA_TEST_DOTENV"))

	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
