package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	// explicit is set when the config file was named by the caller; a
	// missing explicit file is an error instead of being created.
	explicit bool
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithConfigFile reads the configuration from path instead of searching
// the XDG config directory.
func WithConfigFile(path string) ManagerOption {
	return func(m *Manager) {
		if path == "" {
			return
		}
		m.viper.SetConfigFile(path)
		m.explicit = true
	}
}

// NewManager creates a new configuration manager.
func NewManager(opts ...ManagerOption) (*Manager, error) {
	v := viper.New()

	// Configure Viper for TOML as default format
	v.SetConfigName("config") // Name without extension
	v.SetConfigType("toml")   // TOML as default format

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	// Environment variables use the NATIVEWINDOW_ prefix with dots mapped to
	// underscores (e.g. NATIVEWINDOW_PUMP_INTERVAL_MS, NATIVEWINDOW_PLATFORM_BACKEND).
	v.SetEnvPrefix("NATIVEWINDOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names shared with logging.NewFromEnv
	if err := v.BindEnv("logging.level", "NATIVEWINDOW_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind NATIVEWINDOW_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "NATIVEWINDOW_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind NATIVEWINDOW_LOG_FORMAT: %w", err)
	}

	m := &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.explicit {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if !errors.As(err, &configFileNotFoundError) || m.explicit {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configDir, _ := GetConfigDir()
			configFile = filepath.Join(configDir, configName)
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			configDir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf(
			"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
			rereadErr,
		)
	}
	return nil
}

// decode unmarshals, completes, normalizes and validates the current viper
// state. Must be called with m.mu held.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	switch config.Logging.Level {
	case "":
		config.Logging.Level = "info"
	case "warning":
		config.Logging.Level = "warn"
	case "off":
		config.Logging.Level = "disabled"
	}

	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = "console"
	}

	switch strings.ToLower(strings.TrimSpace(string(config.Platform.Backend))) {
	case "", string(PlatformHeadless):
		config.Platform.Backend = PlatformHeadless
	case string(PlatformGTK), "webkit", "webkitgtk":
		config.Platform.Backend = PlatformGTK
	}

	config.Metrics.Listen = strings.TrimSpace(config.Metrics.Listen)

	for i := range config.Windows {
		config.Windows[i].Name = strings.TrimSpace(config.Windows[i].Name)
		config.Windows[i].URL = strings.TrimSpace(config.Windows[i].URL)
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	// Return a copy to prevent external modification
	configCopy := *m.config
	configCopy.Windows = append([]WindowProfile(nil), m.config.Windows...)
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the default configuration and its JSON schema
// into the config directory.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := WriteConfig(DefaultConfig(), configFile); err != nil {
		return err
	}
	if _, err := WriteSchemaFile(filepath.Dir(configFile)); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", configFile)

	m.viper.SetConfigFile(configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// database.path stays empty so decode() can fall back to the XDG data dir

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)

	m.viper.SetDefault("pump.interval_ms", defaults.Pump.IntervalMilliseconds)
	m.viper.SetDefault("pump.queue_capacity", defaults.Pump.QueueCapacity)
	m.viper.SetDefault("pump.buffer_capacity", defaults.Pump.BufferCapacity)
	m.viper.SetDefault("pump.window_message_limit", defaults.Pump.WindowMessageLimit)

	m.viper.SetDefault("metrics.listen", defaults.Metrics.Listen)
	m.viper.SetDefault("database.path", defaults.Database.Path)

	m.viper.SetDefault("platform.backend", string(defaults.Platform.Backend))
	m.viper.SetDefault("platform.script_timeout_ms", defaults.Platform.ScriptTimeoutMilliseconds)
}

// Global configuration manager instance
var globalManager *Manager
var globalManagerOnce sync.Once

// Init initializes the global configuration manager.
func Init(opts ...ManagerOption) error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager(opts...)
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration.
func Get() *Config {
	if globalManager == nil {
		// Return defaults if not initialized
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global configuration manager.
// This is useful for accessing watcher functionality.
func GetManager() *Manager {
	return globalManager
}
