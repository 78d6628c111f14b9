//go:build webview

package webview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/entity"
)

func TestViewportResizeUpdatesBounds(t *testing.T) {
	b, err := newBackend(context.Background(), port.BackendParams{
		URL:    "data:text/html,<p>x</p>",
		Bounds: entity.Rect{X: 10, Y: 20, W: 200, H: 100},
	})
	require.NoError(t, err)

	b.sizeChanged(640, 480)
	assert.Equal(t, entity.Rect{X: 10, Y: 20, W: 640, H: 480}, b.Bounds())

	b.sizeChanged(0, 480)
	assert.Equal(t, entity.Rect{X: 10, Y: 20, W: 640, H: 480}, b.Bounds(), "empty viewport ignored")

	require.NoError(t, b.Close())
	b.sizeChanged(300, 300)
	assert.Equal(t, 640, b.Bounds().W)
}

func TestBootstrapReportsViewportSize(t *testing.T) {
	b, err := newBackend(context.Background(), port.BackendParams{URL: "https://example.com"})
	require.NoError(t, err)
	assert.Contains(t, b.bootstrap, sizeChangedFunction+"(window.innerWidth, window.innerHeight)")
	assert.Contains(t, b.bootstrap, loadFinishedFunction+"()")
}
