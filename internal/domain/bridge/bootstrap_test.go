package bridge

import (
	"strings"
	"testing"

	"github.com/grafana/sobek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlatform = `function juceBridgeInternalMessage(msg) { __post(msg); }`

func runBootstrap(t *testing.T, opts BootstrapOptions, page string) []string {
	t.Helper()

	vm := sobek.New()
	var posted []string
	require.NoError(t, vm.Set("__post", func(s string) { posted = append(posted, s) }))

	script := WithPlatformInjection(testPlatform, Bootstrap(opts))
	_, err := vm.RunString(script)
	require.NoError(t, err)

	if page != "" {
		_, err = vm.RunString(page)
		require.NoError(t, err)
	}
	return posted
}

func TestBootstrapBridgeObject(t *testing.T) {
	posted := runBootstrap(t, BootstrapOptions{}, `
		juceBridge.postMessage("hello");
		juceBridge.resizeTo(300, 200);
	`)

	assert.Equal(t, []string{"message:hello", "resize:300,200"}, posted)
}

func TestBootstrapOrder(t *testing.T) {
	script := WithPlatformInjection(WebKitInjection, Bootstrap(BootstrapOptions{
		ForwardConsole: true,
		UserScript:     "window.userMarker = 1;",
	}))

	platform := strings.Index(script, "webkit.messageHandlers.juceBridge")
	bridgeObj := strings.Index(script, "var juceBridge")
	console := strings.Index(script, "console[level]")
	user := strings.Index(script, "window.userMarker")

	require.True(t, platform >= 0 && bridgeObj >= 0 && console >= 0 && user >= 0)
	assert.Less(t, platform, bridgeObj)
	assert.Less(t, bridgeObj, console)
	assert.Less(t, console, user)
}

func TestBootstrapWithoutConsole(t *testing.T) {
	script := Bootstrap(BootstrapOptions{})
	assert.NotContains(t, script, "console[level]")
	assert.True(t, strings.HasPrefix(script, "var juceBridge"))
}

func TestBootstrapUserScriptRunsAfterBridge(t *testing.T) {
	posted := runBootstrap(t, BootstrapOptions{UserScript: `juceBridge.postMessage("from-user");`}, "")
	assert.Equal(t, []string{"message:from-user"}, posted)
}

func TestConsoleForwarding(t *testing.T) {
	vm := sobek.New()
	var posted []string
	var native []string
	require.NoError(t, vm.Set("__post", func(s string) { posted = append(posted, s) }))

	console := vm.NewObject()
	require.NoError(t, console.Set("warn", func(s string) { native = append(native, s) }))
	require.NoError(t, vm.Set("console", console))

	_, err := vm.RunString(WithPlatformInjection(testPlatform, Bootstrap(BootstrapOptions{ForwardConsole: true})))
	require.NoError(t, err)

	_, err = vm.RunString(`console.warn("careful"); console.log("n", 1, {a: 2});`)
	require.NoError(t, err)

	assert.Equal(t, []string{"log:warn+careful", `log:log+n 1 {"a":2}`}, posted)
	assert.Equal(t, []string{"careful"}, native, "original console function still runs")
}

func TestWithPlatformInjectionEmpty(t *testing.T) {
	assert.Equal(t, "body", WithPlatformInjection("", "body"))
	assert.Equal(t, "head\nbody", WithPlatformInjection("head", "body"))
}
