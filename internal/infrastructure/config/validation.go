package config

import (
	"fmt"
	"net"
	"slices"
	"strings"

	"github.com/bnema/nativewindow/internal/domain/security"
	"github.com/bnema/nativewindow/internal/domain/window"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	validLogFormats = []string{"console", "json"}
)

// validateConfig performs comprehensive validation of configuration values.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validatePump(config)...)
	validationErrors = append(validationErrors, validateMetrics(config)...)
	validationErrors = append(validationErrors, validatePlatform(config)...)
	validationErrors = append(validationErrors, validateWindows(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

// Validate reports every invalid value of cfg in a single error.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	return validateConfig(cfg)
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !slices.Contains(validLogLevels, config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of: %s", strings.Join(validLogLevels, ", ")))
	}
	if !slices.Contains(validLogFormats, config.Logging.Format) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be one of: %s", strings.Join(validLogFormats, ", ")))
	}
	return validationErrors
}

func validatePump(config *Config) []string {
	var validationErrors []string
	if config.Pump.IntervalMilliseconds < 1 {
		validationErrors = append(validationErrors, "pump.interval_ms must be at least 1")
	}
	if config.Pump.QueueCapacity < 1 {
		validationErrors = append(validationErrors, "pump.queue_capacity must be at least 1")
	}
	if config.Pump.BufferCapacity < 1 {
		validationErrors = append(validationErrors, "pump.buffer_capacity must be at least 1")
	}
	if config.Pump.WindowMessageLimit < 1 {
		validationErrors = append(validationErrors, "pump.window_message_limit must be at least 1")
	}
	return validationErrors
}

func validateMetrics(config *Config) []string {
	if config.Metrics.Listen == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(config.Metrics.Listen); err != nil {
		return []string{fmt.Sprintf("metrics.listen must be host:port (got %q)", config.Metrics.Listen)}
	}
	return nil
}

func validatePlatform(config *Config) []string {
	var validationErrors []string
	switch config.Platform.Backend {
	case PlatformHeadless, PlatformGTK:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("platform.backend must be one of: %s, %s", PlatformHeadless, PlatformGTK))
	}
	if config.Platform.ScriptTimeoutMilliseconds < 1 {
		validationErrors = append(validationErrors, "platform.script_timeout_ms must be at least 1")
	}
	return validationErrors
}

func validateWindows(config *Config) []string {
	var validationErrors []string
	seen := make(map[string]struct{}, len(config.Windows))
	for i, profile := range config.Windows {
		prefix := fmt.Sprintf("windows[%d]", i)
		if profile.Name == "" {
			validationErrors = append(validationErrors, prefix+".name cannot be empty")
		} else {
			prefix = fmt.Sprintf("windows.%s", profile.Name)
			if _, dup := seen[profile.Name]; dup {
				validationErrors = append(validationErrors, prefix+" is defined more than once")
			}
			seen[profile.Name] = struct{}{}
		}

		if profile.URL != "" && profile.HTML != "" {
			validationErrors = append(validationErrors, prefix+": url and html are mutually exclusive")
		}
		if profile.URL != "" && !window.IsLoadableURL(profile.URL) {
			validationErrors = append(validationErrors, prefix+".url must use http or https")
		}
		validationErrors = append(validationErrors, validateWindowOptions(prefix, profile.Options)...)
	}
	return validationErrors
}

func validateWindowOptions(prefix string, opts window.Options) []string {
	var validationErrors []string
	positive := func(name string, v *float64) {
		if v != nil && *v <= 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.%s must be positive", prefix, name))
		}
	}
	positive("width", opts.Width)
	positive("height", opts.Height)
	positive("min_width", opts.MinWidth)
	positive("min_height", opts.MinHeight)
	positive("max_width", opts.MaxWidth)
	positive("max_height", opts.MaxHeight)

	if opts.MinWidth != nil && opts.MaxWidth != nil && *opts.MinWidth > *opts.MaxWidth {
		validationErrors = append(validationErrors, prefix+".min_width cannot exceed max_width")
	}
	if opts.MinHeight != nil && opts.MaxHeight != nil && *opts.MinHeight > *opts.MaxHeight {
		validationErrors = append(validationErrors, prefix+".min_height cannot exceed max_height")
	}
	if (opts.X == nil) != (opts.Y == nil) {
		validationErrors = append(validationErrors, prefix+": x and y must be set together")
	}

	for _, origin := range opts.TrustedOrigins {
		if _, ok := security.ExtractOrigin(origin); !ok {
			validationErrors = append(validationErrors,
				fmt.Sprintf("%s.trusted_origins: %q is not a valid origin", prefix, origin))
		}
	}
	for _, host := range opts.AllowedHosts {
		if strings.TrimSpace(host) == "" {
			validationErrors = append(validationErrors, prefix+".allowed_hosts cannot contain empty patterns")
		}
	}
	return validationErrors
}
