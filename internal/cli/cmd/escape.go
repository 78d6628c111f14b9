package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/plugview/internal/domain/bridge"
)

var escapeCall string

var escapeCmd = &cobra.Command{
	Use:   "escape [text...]",
	Short: "Print text as an escaped JavaScript string literal",
	Long: `Escape text the way the bridge does before evaluating it in a page.

Arguments are joined with spaces. Without arguments the text is read from
stdin. With --call the output is a complete function call.

Examples:
  plugview escape 'say "hi"'
  printf 'a\tb' | plugview escape --call juceBridgeOnMessage`,
	RunE: runEscape,
}

func init() {
	rootCmd.AddCommand(escapeCmd)
	escapeCmd.Flags().StringVar(&escapeCall, "call", "", "wrap the literal in a call to this function")
}

func runEscape(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	out := bridge.EscapeJSLiteral(text)
	if escapeCall != "" {
		out = bridge.FunctionCall(escapeCall, text)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
