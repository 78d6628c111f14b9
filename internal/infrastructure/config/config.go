// Package config loads plugview settings from config.toml and the
// environment with Viper.
package config

// File permission constants
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config represents the complete configuration for plugview.
type Config struct {
	WebView   WebViewConfig   `mapstructure:"webview" yaml:"webview" toml:"webview" json:"webview"`
	Window    WindowConfig    `mapstructure:"window" yaml:"window" toml:"window" json:"window"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
	Messaging MessagingConfig `mapstructure:"messaging" yaml:"messaging" toml:"messaging" json:"messaging"`
}

// WebViewConfig controls how editor views are built.
type WebViewConfig struct {
	// Backend names the registered backend (headless, webkitgtk, webview).
	Backend string `mapstructure:"backend" yaml:"backend" toml:"backend" json:"backend" jsonschema:"description=Web view backend name"`
	// URL is the page loaded by "plugview run" when none is given.
	// Empty loads the built-in demo editor.
	URL                string `mapstructure:"url" yaml:"url" toml:"url" json:"url" jsonschema:"description=Editor page URL (http(s)://, file:// or data:)"`
	Width              int    `mapstructure:"width" yaml:"width" toml:"width" json:"width" jsonschema:"minimum=1"`
	Height             int    `mapstructure:"height" yaml:"height" toml:"height" json:"height" jsonschema:"minimum=1"`
	WantsKeyboardFocus bool   `mapstructure:"wants_keyboard_focus" yaml:"wants_keyboard_focus" toml:"wants_keyboard_focus" json:"wants_keyboard_focus"`
	// UserScriptFile is a JavaScript file appended to the bootstrap script.
	UserScriptFile   string `mapstructure:"user_script_file" yaml:"user_script_file" toml:"user_script_file" json:"user_script_file"`
	ForwardConsole   bool   `mapstructure:"forward_console" yaml:"forward_console" toml:"forward_console" json:"forward_console"`
	StrictAssertions bool   `mapstructure:"strict_assertions" yaml:"strict_assertions" toml:"strict_assertions" json:"strict_assertions"`
}

// WindowConfig controls the standalone host window.
type WindowConfig struct {
	Title            string `mapstructure:"title" yaml:"title" toml:"title" json:"title"`
	Resizable        bool   `mapstructure:"resizable" yaml:"resizable" toml:"resizable" json:"resizable"`
	RecenterOnResize bool   `mapstructure:"recenter_on_resize" yaml:"recenter_on_resize" toml:"recenter_on_resize" json:"recenter_on_resize"`
	// Zero means unconstrained.
	MinWidth  int `mapstructure:"min_width" yaml:"min_width" toml:"min_width" json:"min_width" jsonschema:"minimum=0"`
	MinHeight int `mapstructure:"min_height" yaml:"min_height" toml:"min_height" json:"min_height" jsonschema:"minimum=0"`
	MaxWidth  int `mapstructure:"max_width" yaml:"max_width" toml:"max_width" json:"max_width" jsonschema:"minimum=0"`
	MaxHeight int `mapstructure:"max_height" yaml:"max_height" toml:"max_height" json:"max_height" jsonschema:"minimum=0"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=text,enum=console,enum=json"`
}

// MessagingConfig controls the editor message router.
type MessagingConfig struct {
	// DedupeState skips pushing a state snapshot identical to the last one.
	DedupeState bool `mapstructure:"dedupe_state" yaml:"dedupe_state" toml:"dedupe_state" json:"dedupe_state"`
}
