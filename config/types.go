package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API         APIConfig     `mapstructure:"api"`
	Output      OutputConfig  `mapstructure:"output"`
	Logging     LoggingConfig `mapstructure:"logging"`
	Filter      FilterConfig  `mapstructure:"filter"`
	Concurrency int           `mapstructure:"concurrency"`
}

// APIConfig holds Wistia API connection details
type APIConfig struct {
	Password string        `mapstructure:"password"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// Debug is off, summary or verbose
	Debug   string        `mapstructure:"debug"`
	Breaker BreakerConfig `mapstructure:"breaker"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// BreakerConfig controls the circuit breaker around the API transport
type BreakerConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

// MetricsConfig enables request metrics, reported when a command finishes
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// OutputConfig controls how command results are printed
type OutputConfig struct {
	// Format is text or json
	Format string `mapstructure:"format"`
	// Account is the subdomain used to build dashboard links
	Account string `mapstructure:"account"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// FilterConfig contains media filter definitions
type FilterConfig struct {
	// Default is applied by medias list when no filter is given
	Default string            `mapstructure:"default"`
	Presets map[string]string `mapstructure:"presets"`
}
