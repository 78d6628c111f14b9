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
	configDir string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	// skipNextReload is set by Save so the watcher does not reload the
	// file we just wrote.
	skipNextReload bool
}

// NewManager creates a configuration manager reading config.toml from the
// XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerInDir(configDir)
}

// NewManagerInDir creates a configuration manager reading config.toml
// from dir.
func NewManagerInDir(dir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("PLUGVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Logging environment variable bindings
	if err := v.BindEnv("logging.level", "PLUGVIEW_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind PLUGVIEW_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "PLUGVIEW_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind PLUGVIEW_LOG_FORMAT: %w", err)
	}
	if err := v.BindEnv("webview.backend", "PLUGVIEW_BACKEND"); err != nil {
		return nil, fmt.Errorf("failed to bind PLUGVIEW_BACKEND: %w", err)
	}

	return &Manager{
		viper:     v,
		configDir: dir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
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
	if !errors.As(err, &configFileNotFoundError) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile = m.configFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.configDir,
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

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.WebView.Backend = strings.ToLower(strings.TrimSpace(config.WebView.Backend))
	config.WebView.URL = strings.TrimSpace(config.WebView.URL)
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	case "", "text", "console":
		config.Logging.Format = "text"
	default:
		config.Logging.Format = "text"
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
	return &configCopy
}

// Save validates cfg and writes it to the config file.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := WriteConfigOrdered(cfg, m.configFile()); err != nil {
		return err
	}

	if m.watching {
		m.skipNextReload = true
		configCopy := *cfg
		m.config = &configCopy
		return nil
	}
	return m.reload()
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.configFile()
}

func (m *Manager) configFile() string {
	return filepath.Join(m.configDir, "config.toml")
}

// createDefaultConfig writes the defaults to a new config file.
func (m *Manager) createDefaultConfig() error {
	configFile := m.configFile()
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}
	return WriteConfigOrdered(DefaultConfig(), configFile)
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setWebViewDefaults(defaults)
	m.setWindowDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.viper.SetDefault("messaging.dedupe_state", defaults.Messaging.DedupeState)
}

func (m *Manager) setWebViewDefaults(defaults *Config) {
	m.viper.SetDefault("webview.backend", defaults.WebView.Backend)
	m.viper.SetDefault("webview.url", defaults.WebView.URL)
	m.viper.SetDefault("webview.width", defaults.WebView.Width)
	m.viper.SetDefault("webview.height", defaults.WebView.Height)
	m.viper.SetDefault("webview.wants_keyboard_focus", defaults.WebView.WantsKeyboardFocus)
	m.viper.SetDefault("webview.user_script_file", defaults.WebView.UserScriptFile)
	m.viper.SetDefault("webview.forward_console", defaults.WebView.ForwardConsole)
	m.viper.SetDefault("webview.strict_assertions", defaults.WebView.StrictAssertions)
}

func (m *Manager) setWindowDefaults(defaults *Config) {
	m.viper.SetDefault("window.title", defaults.Window.Title)
	m.viper.SetDefault("window.resizable", defaults.Window.Resizable)
	m.viper.SetDefault("window.recenter_on_resize", defaults.Window.RecenterOnResize)
	m.viper.SetDefault("window.min_width", defaults.Window.MinWidth)
	m.viper.SetDefault("window.min_height", defaults.Window.MinHeight)
	m.viper.SetDefault("window.max_width", defaults.Window.MaxWidth)
	m.viper.SetDefault("window.max_height", defaults.Window.MaxHeight)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

// Global configuration manager instance
var (
	globalManager     *Manager
	globalManagerOnce sync.Once
)

// Init initializes the global configuration manager.
func Init() error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager()
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration, or the defaults before Init.
func Get() *Config {
	if globalManager == nil {
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global configuration manager.
func GetManager() *Manager {
	return globalManager
}
