package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/plugview/internal/cli"
	"github.com/bnema/plugview/internal/cli/model"
	"github.com/bnema/plugview/internal/domain/url"
	"github.com/bnema/plugview/internal/logging"
)

var consoleCmd = &cobra.Command{
	Use:   "console [url]",
	Short: "Talk to a page over the bridge from the terminal",
	Long: `Load a page in the headless backend and exchange bridge messages
with it interactively.

Input lines are sent to juceBridgeOnMessage. Commands:
  :js <script>     evaluate JavaScript in the page
  :resize W H      resize the view
  :reload          reload the page, bootstrap included
  :send <text>     send text that starts with ':'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	userScript, err := readUserScript(app.Config.WebView.UserScriptFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), shutdownSignals...)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	params := cli.ConsoleParams{
		Config:     app.Config,
		UserScript: userScript,
		LogLevel:   logging.ParseLevel(app.Config.Logging.Level, zerolog.InfoLevel),
	}
	if len(args) == 1 {
		params.URL = url.Normalize(args[0])
	}

	session, err := cli.NewConsoleSession(ctx, params)
	if err != nil {
		return err
	}

	title := params.URL
	if title == "" {
		title = "blank page"
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return session.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		m := model.NewConsoleModel(app.Theme, session, title)
		_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(gctx)).Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("console: %w", err)
		}
		return nil
	})
	return g.Wait()
}
