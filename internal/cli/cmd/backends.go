package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bnema/plugview/internal/cli/styles"
	"github.com/bnema/plugview/internal/infrastructure/backends"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the web view backends compiled into this binary",
	RunE:  runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

func runBackends(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	return renderBackends(cmd.OutOrStdout(), app.Theme, app.Config.WebView.Backend)
}

func renderBackends(w io.Writer, theme *styles.Theme, configured string) error {
	if configured == "" {
		configured = backends.Default
	}

	for _, name := range backends.Names() {
		f, err := backends.Lookup(name)
		if err != nil {
			return err
		}

		line := fmt.Sprintf("  %s %s", theme.Highlight.Render(styles.IconWindow), theme.Normal.Render(name))
		if name == configured {
			line += " " + theme.AccentBadge("selected")
		}
		if name == backends.Default {
			line += " " + theme.MutedBadge("default")
		}
		if _, ok := backends.HostDriver(f); ok {
			line += " " + theme.Subtle.Render("standalone window")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
