// Package config loads the nativewindow configuration with Viper.
package config

import (
	"github.com/bnema/nativewindow/internal/coordinator"
	"github.com/bnema/nativewindow/internal/domain/window"
)

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for nativewindow.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" json:"logging" toml:"logging"`
	Pump     PumpConfig     `mapstructure:"pump" json:"pump" toml:"pump"`
	Metrics  MetricsConfig  `mapstructure:"metrics" json:"metrics" toml:"metrics"`
	Database DatabaseConfig `mapstructure:"database" json:"database" toml:"database"`
	Platform PlatformConfig `mapstructure:"platform" json:"platform" toml:"platform"`
	// Windows are the named window profiles opened by `nativewindow run`.
	Windows []WindowProfile `mapstructure:"windows" json:"windows,omitempty" toml:"windows,omitempty"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format string `mapstructure:"format" json:"format" toml:"format" jsonschema:"enum=console,enum=json"`
}

// PumpConfig tunes the coordination cycle.
type PumpConfig struct {
	// IntervalMilliseconds is the delay between two Pump calls of the run loop.
	IntervalMilliseconds int `mapstructure:"interval_ms" json:"interval_ms" toml:"interval_ms" jsonschema:"minimum=1"`
	QueueCapacity        int `mapstructure:"queue_capacity" json:"queue_capacity" toml:"queue_capacity" jsonschema:"minimum=1"`
	BufferCapacity       int `mapstructure:"buffer_capacity" json:"buffer_capacity" toml:"buffer_capacity" jsonschema:"minimum=1"`
	WindowMessageLimit   int `mapstructure:"window_message_limit" json:"window_message_limit" toml:"window_message_limit" jsonschema:"minimum=1"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Listen is the address served by `nativewindow run`. Empty disables it.
	Listen string `mapstructure:"listen" json:"listen" toml:"listen"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" json:"path" toml:"path"`
}

// PlatformBackend selects the native implementation.
type PlatformBackend string

const (
	PlatformHeadless PlatformBackend = "headless"
	PlatformGTK      PlatformBackend = "gtk"
)

// PlatformConfig selects and tunes the platform backend.
type PlatformConfig struct {
	Backend PlatformBackend `mapstructure:"backend" json:"backend" toml:"backend" jsonschema:"enum=headless,enum=gtk"`
	// ScriptTimeoutMilliseconds bounds each script run by the headless backend.
	ScriptTimeoutMilliseconds int `mapstructure:"script_timeout_ms" json:"script_timeout_ms" toml:"script_timeout_ms" jsonschema:"minimum=1"`
}

// WindowProfile is a window opened at startup.
type WindowProfile struct {
	Name string `mapstructure:"name" json:"name" toml:"name"`
	// URL and HTML are mutually exclusive initial contents.
	URL  string `mapstructure:"url" json:"url,omitempty" toml:"url,omitempty"`
	HTML string `mapstructure:"html" json:"html,omitempty" toml:"html,omitempty"`

	window.Options `mapstructure:",squash"`
}

// Profile returns the window profile with the given name.
func (c *Config) Profile(name string) (WindowProfile, bool) {
	for _, p := range c.Windows {
		if p.Name == name {
			return p, true
		}
	}
	return WindowProfile{}, false
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Pump: PumpConfig{
			IntervalMilliseconds: 16,
			QueueCapacity:        coordinator.DefaultQueueCapacity,
			BufferCapacity:       coordinator.DefaultBufferCapacity,
			WindowMessageLimit:   coordinator.DefaultWindowMessageLimit,
		},
		Platform: PlatformConfig{
			Backend:                   PlatformHeadless,
			ScriptTimeoutMilliseconds: 5000,
		},
	}
}
