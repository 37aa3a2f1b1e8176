package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/wistia/wistia"
)

// EnvPrefix is prepended to every environment override, e.g.
// WISTIA_API_PASSWORD for api.password.
const EnvPrefix = "WISTIA"

// Load loads the configuration from file, .env and environment.
//
// An explicit configPath must exist. Without one, the standard locations are
// searched and a missing file is not an error: the API password alone can
// come from the environment.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys without a default are invisible to Unmarshal unless bound.
	for _, key := range []string{"api.password", "output.account", "filter.default"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "wistia"))
		}

		// Check /etc
		v.AddConfigPath("/etc/wistia/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && configPath == "":
			// environment only
		case errors.As(err, &notFound):
			return nil, fmt.Errorf("config file not found: %w", err)
		default:
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv exports the variables of path if the file exists. Variables
// already set in the environment win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", wistia.DefaultBaseURL)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.debug", "off")
	v.SetDefault("api.breaker.enabled", false)
	v.SetDefault("api.breaker.consecutive_failures", 5)
	v.SetDefault("api.breaker.timeout", 2*time.Minute)
	v.SetDefault("api.metrics.enabled", false)

	v.SetDefault("concurrency", wistia.DefaultConcurrency)

	// Output defaults
	v.SetDefault("output.format", "text")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Password == "" || cfg.API.Password == "your-api-password-here" {
		return fmt.Errorf("api.password must be set to a valid API password")
	}

	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}

	if _, err := wistia.ParseDebugMode(cfg.API.Debug); err != nil {
		return fmt.Errorf("api.debug: %w", err)
	}

	if cfg.Concurrency < 1 || cfg.Concurrency > wistia.MaxConcurrency {
		return fmt.Errorf("concurrency must be between 1 and %d, got %d", wistia.MaxConcurrency, cfg.Concurrency)
	}

	// Validate output format
	validOutputs := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter.presets.%s is empty", name)
		}
	}

	return nil
}

// DebugMode returns the parsed api.debug setting
func (c *Config) DebugMode() wistia.DebugMode {
	mode, _ := wistia.ParseDebugMode(c.API.Debug)
	return mode
}

// Preset looks up a named filter expression
func (c *Config) Preset(name string) (string, error) {
	expression, ok := c.Filter.Presets[name]
	if !ok {
		return "", fmt.Errorf("preset '%s' not found in config", name)
	}
	return expression, nil
}
