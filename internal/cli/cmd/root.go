// Package cmd provides Cobra CLI commands for plugview.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/plugview/internal/cli"
	"github.com/bnema/plugview/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	overrides cli.Overrides
	rootCmd   = &cobra.Command{
		Use:   "plugview",
		Short: "Native web view bridge for audio plugin editors",
		Long: `plugview embeds a web page in a native window and bridges it to the
host with a tiny string protocol: the page posts messages and resize
requests, the host answers through a JavaScript callback.

Backends:
  - headless   sobek JavaScript runtime, always available
  - webkitgtk  GTK4 + WebKitGTK 6.0 (build tag webkitgtk)
  - webview    system web view through webview_go (build tag webview)

Use 'plugview run' to open the demo gain editor, or 'plugview console'
to talk to a page from the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "escape":
				return nil
			}

			var err error
			app, err = cli.NewApp(overrides)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			// Set build info from main.go
			app.BuildInfo = buildInfo.Current()
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&overrides.Backend, "backend", "", "web view backend (overrides webview.backend)")
	rootCmd.PersistentFlags().StringVar(&overrides.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
