package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/plugview/internal/application/nativeview"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/infrastructure/headless"
	"github.com/bnema/plugview/internal/ui/mainloop"
)

func TestDemoPageRoundTrip(t *testing.T) {
	loop := mainloop.New()
	store := NewMemoryStore(GainParameter())

	closed := false
	ed := New(context.Background(), store, Options{
		DedupeState: true,
		OnClose:     func() { closed = true },
	})

	cfg := nativeview.WebViewConfiguration{
		URL:  DemoPageURL(),
		Size: entity.NewRect(400, 300),
	}
	ed.Configure(&cfg)

	view, err := nativeview.New(context.Background(), cfg, headless.NewFactory(), nativeview.WithPost(loop.Post))
	require.NoError(t, err)
	ed.Bind(view)
	t.Cleanup(func() { _ = view.Destroy() })

	loop.RunPending()

	require.NoError(t, view.EvaluateJavascript(`send('setParameter', { id: 'gain', value: 0.25 });`))
	loop.RunPending()

	p, ok := store.Get("gain")
	require.True(t, ok)
	assert.Equal(t, 0.25, p.Value)

	require.NoError(t, view.EvaluateJavascript(`juceBridge.resizeTo(800, 600);`))
	loop.RunPending()
	assert.Equal(t, entity.NewRect(800, 600), view.Bounds())

	require.NoError(t, view.EvaluateJavascript(`send('close');`))
	loop.RunPending()
	assert.True(t, closed)
}
