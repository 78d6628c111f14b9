package headless

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/bridge"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/ui/mainloop"
)

type harness struct {
	loop     *mainloop.Loop
	backend  *Backend
	messages []string
	loads    int
}

func htmlURL(body string) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(body))
}

func newHarness(t *testing.T, rawURL string, bootstrap bridge.BootstrapOptions) *harness {
	t.Helper()

	h := &harness{loop: mainloop.New()}
	params := port.BackendParams{
		Bounds:    entity.NewRect(200, 100),
		URL:       rawURL,
		Bootstrap: bridge.Bootstrap(bootstrap),
		Callbacks: port.BackendCallbacks{
			LoadFinished:    func() { h.loads++ },
			MessageReceived: func(raw string) { h.messages = append(h.messages, raw) },
		},
		Post: h.loop.Post,
	}

	b, err := NewFactory().Create(context.Background(), params)
	require.NoError(t, err)
	h.backend = b.(*Backend)
	return h
}

func TestDataURILoadsRawWithInitialBounds(t *testing.T) {
	h := newHarness(t, "data:text/html;base64,PGh0bWw+PC9odG1sPg==", bridge.BootstrapOptions{})

	// Nothing has run yet: the navigation waits for the loop.
	assert.Equal(t, entity.NewRect(200, 100), h.backend.Bounds())
	assert.Equal(t, LoadModeNone, h.backend.LoadMode())
	assert.Zero(t, h.loads)

	h.loop.RunPending()

	assert.Equal(t, LoadModeRaw, h.backend.LoadMode())
	assert.Empty(t, h.backend.Navigations())
	assert.Equal(t, entity.NewRect(200, 100), h.backend.Bounds())
	assert.Equal(t, 1, h.loads)
}

func TestPageMessagesAreDeliveredAsynchronously(t *testing.T) {
	h := newHarness(t, htmlURL(`<script>juceBridge.postMessage("hello"); juceBridge.resizeTo(640, 480);</script>`), bridge.BootstrapOptions{})

	h.loop.RunPending()

	assert.Equal(t, []string{"message:hello", "resize:640,480"}, h.messages)
}

func TestBootstrapRunsBeforePageScripts(t *testing.T) {
	h := newHarness(t, htmlURL(`<script>var sawBridge = typeof juceBridge; var sawUser = window.userMarker;</script>`),
		bridge.BootstrapOptions{UserScript: "window.userMarker = 'set';"})

	h.loop.RunPending()

	assert.Equal(t, "object", h.backend.Global("sawBridge"))
	assert.Equal(t, "set", h.backend.Global("sawUser"))
}

func TestExecuteJSReachesReceiver(t *testing.T) {
	page := `<script>
		function juceBridgeOnMessage(m) { juceBridge.postMessage("echo " + m); }
	</script>`
	h := newHarness(t, htmlURL(page), bridge.BootstrapOptions{})
	h.loop.RunPending()

	h.backend.ExecuteJS(bridge.ReceiverFunction, `it's "quoted"`)
	h.loop.RunPending()

	assert.Equal(t, []string{`message:echo it's "quoted"`}, h.messages)
}

func TestEvalJSBeforeLoadIsDropped(t *testing.T) {
	h := newHarness(t, htmlURL(""), bridge.BootstrapOptions{})

	h.backend.EvalJS("var early = 1;")
	h.loop.RunPending()

	assert.Nil(t, h.backend.Global("early"))
}

func TestLoadEventsAndTitle(t *testing.T) {
	page := `<title>Editor</title><script>
		var order = [];
		document.addEventListener('DOMContentLoaded', function () { order.push('dom'); });
		window.onload = function () { order.push('onload'); };
		window.addEventListener('load', function () { order.push('load'); readyStateAtEnd = document.readyState; });
		var readyStateAtEnd = '';
	</script>`
	h := newHarness(t, htmlURL(page), bridge.BootstrapOptions{})
	h.loop.RunPending()

	assert.Equal(t, "Editor", h.backend.Title())
	assert.Equal(t, []any{"dom", "onload", "load"}, h.backend.Global("order"))
	assert.Equal(t, "complete", h.backend.Global("readyStateAtEnd"))
}

func TestWindowManagerResize(t *testing.T) {
	page := `<script>
		var resized = 0;
		window.addEventListener('resize', function () { resized = window.innerWidth + "x" + window.innerHeight; });
	</script>`
	h := newHarness(t, htmlURL(page), bridge.BootstrapOptions{})
	h.loop.RunPending()

	h.backend.Resize(320, 240)

	assert.Equal(t, entity.NewRect(320, 240), h.backend.Bounds())
	assert.Equal(t, "320x240", h.backend.Global("resized"))
}

func TestRemoteURLIsNavigated(t *testing.T) {
	h := newHarness(t, "https://example.com/editor", bridge.BootstrapOptions{})
	h.loop.RunPending()

	assert.Equal(t, LoadModeNavigate, h.backend.LoadMode())
	assert.Equal(t, []string{"https://example.com/editor"}, h.backend.Navigations())
	assert.Equal(t, 1, h.loads)
}

func TestFilePageWithRelativeScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte(`juceBridge.postMessage("from file");`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(`<script src="app.js"></script>`), 0o600))

	h := newHarness(t, "file://"+filepath.ToSlash(filepath.Join(dir, "index.html")), bridge.BootstrapOptions{})
	h.loop.RunPending()

	assert.Equal(t, LoadModeRaw, h.backend.LoadMode())
	assert.Equal(t, []string{"message:from file"}, h.messages)
}

func TestJavaScriptDataURI(t *testing.T) {
	h := newHarness(t, "data:text/javascript,juceBridge.postMessage(%22js%22)", bridge.BootstrapOptions{})
	h.loop.RunPending()

	assert.Equal(t, []string{"message:js"}, h.messages)
}

func TestReloadRerunsBootstrap(t *testing.T) {
	h := newHarness(t, htmlURL(`<script>juceBridge.postMessage(typeof window.counter);</script>`),
		bridge.BootstrapOptions{UserScript: "window.counter = 1;"})
	h.loop.RunPending()

	require.NoError(t, h.backend.Reload())
	h.loop.RunPending()

	assert.Equal(t, 2, h.backend.Loads())
	assert.Equal(t, []string{"message:number", "message:number"}, h.messages)
}

func TestSetTimeoutRunsOnLoop(t *testing.T) {
	h := newHarness(t, htmlURL(`<script>setTimeout(function () { juceBridge.postMessage("later"); }, 10);</script>`), bridge.BootstrapOptions{})
	h.loop.RunPending()

	assert.Equal(t, []string{"message:later"}, h.messages)
}

func TestConsoleForwarding(t *testing.T) {
	h := newHarness(t, htmlURL(`<script>console.error("bad", 42);</script>`), bridge.BootstrapOptions{ForwardConsole: true})
	h.loop.RunPending()

	assert.Equal(t, []string{"log:error+bad 42"}, h.messages)
}

func TestAttachDetach(t *testing.T) {
	h := newHarness(t, htmlURL(""), bridge.BootstrapOptions{})

	assert.ErrorIs(t, h.backend.AttachToParent(nil), port.ErrNilParent)
	assert.ErrorIs(t, h.backend.DetachFromParent(), port.ErrNotAttached)

	require.NoError(t, h.backend.AttachToParent("parent"))
	assert.True(t, h.backend.Attached())
	assert.Equal(t, port.NativeHandle("parent"), h.backend.Parent())
	assert.ErrorIs(t, h.backend.AttachToParent("other"), port.ErrAlreadyAttached)

	require.NoError(t, h.backend.DetachFromParent())
	assert.False(t, h.backend.Attached())
}

func TestCloseStopsDelivery(t *testing.T) {
	h := newHarness(t, htmlURL(`<script>juceBridge.postMessage("queued");</script>`), bridge.BootstrapOptions{})

	// Run the navigation but not the delivery it posts.
	h.loop.Post(func() { require.NoError(t, h.backend.Close()) })
	h.loop.RunPending()

	assert.Empty(t, h.messages)
	assert.ErrorIs(t, h.backend.AttachToParent("p"), port.ErrBackendClosed)
	assert.ErrorIs(t, h.backend.Reload(), port.ErrBackendClosed)
	h.backend.EvalJS("1")
	require.NoError(t, h.backend.Close())
}

func TestScriptErrorsDoNotStopLoad(t *testing.T) {
	h := newHarness(t, htmlURL(`<script>throw new Error("boom");</script><script>juceBridge.postMessage("after");</script>`), bridge.BootstrapOptions{})
	h.loop.RunPending()

	assert.Equal(t, []string{"message:after"}, h.messages)
	assert.Equal(t, 1, h.loads)
}

func TestModuleScriptsAreSkipped(t *testing.T) {
	h := newHarness(t, htmlURL(`<script type="module">import "./x.js"; juceBridge.postMessage("module");</script><script>juceBridge.postMessage("classic");</script>`), bridge.BootstrapOptions{})
	h.loop.RunPending()

	assert.Equal(t, []string{"message:classic"}, h.messages)
	assert.Equal(t, 1, h.loads)
}

func TestStrayPercentInDataURI(t *testing.T) {
	h := newHarness(t, `data:text/html,<div style="width:100%">x</div><script>juceBridge.postMessage("loaded");</script>`, bridge.BootstrapOptions{})
	h.loop.RunPending()

	assert.Equal(t, []string{"message:loaded"}, h.messages)
}

func TestCreateRejectsEmptyURL(t *testing.T) {
	_, err := NewFactory().Create(context.Background(), port.BackendParams{})
	assert.ErrorIs(t, err, port.ErrCreateFailed)
}
