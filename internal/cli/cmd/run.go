package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/bnema/plugview/internal/cli"
	"github.com/bnema/plugview/internal/domain/url"
	"github.com/bnema/plugview/internal/infrastructure/backends"
)

var runNoWatch bool

var runCmd = &cobra.Command{
	Use:   "run [url]",
	Short: "Open the plugin editor in a standalone window",
	Long: `Open a window on the configured backend and embed the editor page.

Without a URL the configured webview.url is used, and without that the
built-in gain editor demo. The host runs until the page sends "close",
the window is closed or a termination signal arrives.

Examples:
  plugview run
  plugview run file:///home/me/editor/index.html
  plugview run --backend webkitgtk https://localhost:5173`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runNoWatch, "no-watch", false, "do not follow config file changes")
}

func runRun(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	factory, err := backends.Lookup(app.Config.WebView.Backend)
	if err != nil {
		return err
	}

	userScript, err := readUserScript(app.Config.WebView.UserScriptFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), shutdownSignals...)
	defer stop()

	params := cli.HostParams{
		Config:     app.Config,
		Factory:    factory,
		UserScript: userScript,
	}
	if len(args) == 1 {
		params.URL = url.Normalize(args[0])
	}
	if !runNoWatch {
		params.Manager = app.Manager
	}

	return cli.RunHost(ctx, params)
}

// readUserScript loads the optional document-start script.
func readUserScript(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read user script: %w", err)
	}
	return string(data), nil
}
