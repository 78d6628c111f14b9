package config

import "github.com/bnema/plugview/internal/infrastructure/backends"

const (
	defaultWidth  = 400
	defaultHeight = 300
)

// DefaultConfig returns the default configuration values for plugview.
func DefaultConfig() *Config {
	return &Config{
		WebView: WebViewConfig{
			Backend:            backends.Default,
			Width:              defaultWidth,
			Height:             defaultHeight,
			WantsKeyboardFocus: true,
			ForwardConsole:     true,
		},
		Window: WindowConfig{
			Title:            "plugview",
			Resizable:        true,
			RecenterOnResize: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Messaging: MessagingConfig{
			DedupeState: true,
		},
	}
}
