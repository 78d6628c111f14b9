package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grafana/sobek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/plugview/internal/cli/styles"
	"github.com/bnema/plugview/internal/infrastructure/backends"
)

func executeEscape(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	t.Cleanup(func() { escapeCall = "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"escape"}, args...))
	require.NoError(t, rootCmd.Execute())
	return strings.TrimSuffix(out.String(), "\n")
}

func TestEscapeCommandRoundTrips(t *testing.T) {
	got := executeEscape(t, "", `say "hi"`, "now")
	assert.Equal(t, `say \"hi\" now`, got)

	vm := sobek.New()
	v, err := vm.RunString(`"` + got + `"`)
	require.NoError(t, err)
	assert.Equal(t, `say "hi" now`, v.String())
}

func TestEscapeCommandReadsStdin(t *testing.T) {
	got := executeEscape(t, "a\tb\n")
	assert.Equal(t, `a\tb\n`, got)
}

func TestEscapeCommandCall(t *testing.T) {
	got := executeEscape(t, "", "--call", "juceBridgeOnMessage", "x")
	assert.Equal(t, `juceBridgeOnMessage("x");`, got)
}

func TestRenderBackends(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderBackends(&out, styles.NewTheme(), ""))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(backends.Names()))
	assert.Contains(t, out.String(), backends.Default)
	assert.Contains(t, out.String(), "selected")
	assert.Contains(t, out.String(), "standalone window")
}

func TestReadUserScript(t *testing.T) {
	script, err := readUserScript("")
	require.NoError(t, err)
	assert.Empty(t, script)

	_, err = readUserScript("/nonexistent/plugview/user.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read user script")
}
