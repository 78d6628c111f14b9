package config

import (
	"fmt"
	"strings"

	"github.com/bnema/plugview/internal/domain/url"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateWebView(config)...)
	validationErrors = append(validationErrors, validateWindow(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateWebView(config *Config) []string {
	var validationErrors []string
	if config.WebView.Backend == "" {
		validationErrors = append(validationErrors, "webview.backend cannot be empty")
	}
	if config.WebView.Width < 1 || config.WebView.Height < 1 {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"webview.width and webview.height must be positive (got: %dx%d)",
			config.WebView.Width, config.WebView.Height))
	}
	if config.WebView.URL != "" && url.Classify(config.WebView.URL) == url.KindInvalid {
		validationErrors = append(validationErrors, fmt.Sprintf("webview.url is not a valid URL (got: %s)", config.WebView.URL))
	}
	return validationErrors
}

func validateWindow(config *Config) []string {
	var validationErrors []string
	w := config.Window
	if w.MinWidth < 0 || w.MinHeight < 0 || w.MaxWidth < 0 || w.MaxHeight < 0 {
		validationErrors = append(validationErrors, "window size constraints must be non-negative")
	}
	if w.MaxWidth > 0 && w.MinWidth > w.MaxWidth {
		validationErrors = append(validationErrors, fmt.Sprintf("window.min_width (%d) exceeds window.max_width (%d)", w.MinWidth, w.MaxWidth))
	}
	if w.MaxHeight > 0 && w.MinHeight > w.MaxHeight {
		validationErrors = append(validationErrors, fmt.Sprintf("window.min_height (%d) exceeds window.max_height (%d)", w.MinHeight, w.MaxHeight))
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
		return nil
	default:
		return []string{fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got: %s)", config.Logging.Level)}
	}
}
