package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty backend", mutate: func(c *Config) { c.WebView.Backend = "" }, wantErr: "webview.backend"},
		{name: "zero height", mutate: func(c *Config) { c.WebView.Height = 0 }, wantErr: "webview.height"},
		{name: "bad url", mutate: func(c *Config) { c.WebView.URL = "   " }, wantErr: "webview.url"},
		{name: "min above max", mutate: func(c *Config) {
			c.Window.MinHeight = 500
			c.Window.MaxHeight = 100
		}, wantErr: "window.min_height"},
		{name: "negative constraint", mutate: func(c *Config) { c.Window.MinWidth = -1 }, wantErr: "non-negative"},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaUsesTOMLNames(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"wants_keyboard_focus"`)
	assert.Contains(t, string(data), `"dedupe_state"`)
}
