// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/plugview/internal/cli/styles"
	"github.com/bnema/plugview/internal/domain/build"
	"github.com/bnema/plugview/internal/infrastructure/config"
	"github.com/bnema/plugview/internal/logging"
)

// Overrides are command line values that win over the config file.
type Overrides struct {
	Backend  string
	LogLevel string
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	SessionID string

	// Context with logger
	ctx context.Context
}

// NewApp loads the configuration and builds the CLI logger. A broken
// config file is reported and replaced by defaults so that read-only
// commands such as `config path` keep working.
func NewApp(o Overrides) (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("config manager: %w", err)
	}
	cfg, loadErr := loadConfig(mgr)
	if o.Backend != "" {
		cfg.WebView.Backend = o.Backend
	}

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("PLUGVIEW_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	if o.LogLevel != "" {
		logLevel = o.LogLevel
	}

	format := "console"
	if cfg.Logging.Format == "json" {
		format = "json"
	}

	sessionID := logging.GenerateSessionID()
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(logLevel, zerolog.InfoLevel),
		Format:     format,
		TimeFormat: "15:04:05",
	}).With().Str("session", logging.ShortSessionID(sessionID)).Logger()

	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("using default configuration")
	}

	return &App{
		Config:    cfg,
		Manager:   mgr,
		Theme:     styles.NewTheme(),
		SessionID: sessionID,
		ctx:       logging.WithContext(context.Background(), logger),
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from standard locations.
func loadConfig(mgr *config.Manager) (*config.Config, error) {
	if err := mgr.Load(); err != nil {
		// Return default config if loading fails
		return config.DefaultConfig(), err
	}
	return mgr.Get(), nil
}
