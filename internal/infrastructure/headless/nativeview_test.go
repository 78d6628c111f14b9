package headless

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/plugview/internal/application/nativeview"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/ui/mainloop"
)

const echoPage = `<script>
	function juceBridgeOnMessage(m) { juceBridge.postMessage("echo:" + m); }
	juceBridge.resizeTo(640, 480);
</script>`

func TestNativeWebViewOverHeadless(t *testing.T) {
	loop := mainloop.New()

	var received []string
	var executor nativeview.ExecuteJavascript
	cfg := nativeview.WebViewConfiguration{
		URL:               htmlURL(echoPage),
		Size:              entity.NewRect(200, 100),
		OnMessageReceived: func(m string) { received = append(received, m) },
		OnLoad:            func(exec nativeview.ExecuteJavascript) { executor = exec },
	}

	view, err := nativeview.New(context.Background(), cfg, NewFactory(), nativeview.WithPost(loop.Post))
	require.NoError(t, err)
	assert.Equal(t, entity.NewRect(200, 100), view.Bounds(), "bounds before any page script")

	loop.RunPending()

	// resizeTo went through the default handler.
	assert.Equal(t, entity.NewRect(640, 480), view.Bounds())
	require.NotNil(t, executor)

	require.NoError(t, view.SendMessage(`it's "quoted"`))
	loop.RunPending()
	assert.Equal(t, []string{`echo:it's "quoted"`}, received)

	executor(`juceBridge.postMessage("from onLoad");`)
	loop.RunPending()
	assert.Equal(t, "from onLoad", received[len(received)-1])

	surface := NewSurface("editor", entity.NewRect(640, 480))
	require.NoError(t, view.AttachToParent(surface.Handle()))
	require.NoError(t, view.Destroy())
	assert.Equal(t, nativeview.StateDestroyed, view.State())
}

func TestNativeWebViewInlinePost(t *testing.T) {
	var loaded int
	cfg := nativeview.WebViewConfiguration{
		URL:    htmlURL(`<script>juceBridge.postMessage("x");</script>`),
		Size:   entity.NewRect(10, 10),
		OnLoad: func(nativeview.ExecuteJavascript) { loaded++ },
	}

	var received []string
	cfg.OnMessageReceived = func(m string) { received = append(received, m) }

	view, err := nativeview.New(context.Background(), cfg, NewFactory())
	require.NoError(t, err)

	assert.Equal(t, 1, loaded, "load reported during Create is replayed once")
	assert.Equal(t, []string{"x"}, received)
	require.NoError(t, view.Destroy())
}

func TestNativeWebViewInlineResize(t *testing.T) {
	cfg := nativeview.WebViewConfiguration{
		URL:  htmlURL(`<script>juceBridge.resizeTo(640, 480);</script>`),
		Size: entity.NewRect(200, 100),
	}

	view, err := nativeview.New(context.Background(), cfg, NewFactory())
	require.NoError(t, err)
	assert.Equal(t, entity.NewRect(640, 480), view.Bounds())
	require.NoError(t, view.Destroy())
}

func TestNativeWebViewPercentEncodedPage(t *testing.T) {
	var received []string
	cfg := nativeview.WebViewConfiguration{
		URL: `data:text/html,<div style="width:100%">x</div>` +
			`<script>juceBridge.postMessage("loaded");</script>`,
		Size:              entity.NewRect(10, 10),
		OnMessageReceived: func(m string) { received = append(received, m) },
	}

	view, err := nativeview.New(context.Background(), cfg, NewFactory())
	require.NoError(t, err)
	assert.Equal(t, []string{"loaded"}, received)
	require.NoError(t, view.Destroy())
}
