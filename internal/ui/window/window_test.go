package window

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/plugview/internal/application/nativeview"
	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/entity"
)

type fakeSurface struct {
	frame entity.Rect
	title string
}

func (s *fakeSurface) Handle() port.NativeHandle { return s }
func (s *fakeSurface) SetFrame(r entity.Rect)    { s.frame = r }
func (s *fakeSurface) Frame() entity.Rect        { return s.frame }
func (s *fakeSurface) SetTitle(title string)     { s.title = title }

type fakeView struct {
	bounds   entity.Rect
	parent   port.NativeHandle
	attached bool
	resize   nativeview.ResizeHandler
	setCalls []entity.Rect
}

func (v *fakeView) AttachToParent(parent port.NativeHandle) error {
	if v.attached {
		return port.ErrAlreadyAttached
	}
	v.parent, v.attached = parent, true
	return nil
}

func (v *fakeView) DetachFromParent() error {
	if !v.attached {
		return port.ErrNotAttached
	}
	v.parent, v.attached = nil, false
	return nil
}

func (v *fakeView) IsAttached() bool    { return v.attached }
func (v *fakeView) Bounds() entity.Rect { return v.bounds }

func (v *fakeView) SetBounds(r entity.Rect) {
	v.bounds = r
	v.setCalls = append(v.setCalls, r)
}

func (v *fakeView) SetResizeHandler(h nativeview.ResizeHandler) { v.resize = h }

func TestAttachSizesWindowToView(t *testing.T) {
	surface := &fakeSurface{frame: entity.Rect{X: 100, Y: 100, W: 10, H: 10}}
	view := &fakeView{bounds: entity.NewRect(400, 300)}
	w := New(context.Background(), surface, Options{})

	require.NoError(t, w.Attach(view))

	assert.True(t, view.attached)
	assert.Same(t, surface, view.parent)
	assert.NotNil(t, view.resize)
	assert.Equal(t, entity.Rect{X: 100, Y: 100, W: 400, H: 300}, w.Frame())
	assert.ErrorIs(t, w.Attach(view), port.ErrAlreadyAttached)
}

func TestAttachClampsInitialSize(t *testing.T) {
	surface := &fakeSurface{}
	view := &fakeView{bounds: entity.NewRect(100, 100)}
	w := New(context.Background(), surface, Options{Constraints: entity.SizeConstraints{MinW: 300, MinH: 200}})

	require.NoError(t, w.Attach(view))
	assert.Equal(t, entity.NewRect(300, 200), view.bounds)
	assert.Equal(t, entity.NewRect(300, 200), w.Frame())
}

func TestResizeRecentersAndCoalesces(t *testing.T) {
	var queue []func()
	surface := &fakeSurface{frame: entity.Rect{X: 100, Y: 100, W: 400, H: 300}}
	view := &fakeView{bounds: entity.NewRect(400, 300)}
	w := New(context.Background(), surface, Options{
		RecenterOnResize: true,
		Constraints:      entity.SizeConstraints{MaxW: 1000, MaxH: 1000},
		Post:             func(fn func()) { queue = append(queue, fn) },
	})
	require.NoError(t, w.Attach(view))

	view.resize(500, 500)
	view.resize(5000, 500)
	view.resize(600, 500)
	require.Len(t, queue, 1)
	queue[0]()

	// Width grew by 200, height by 200: origin moves by half of each.
	assert.Equal(t, entity.Rect{X: 0, Y: 0, W: 600, H: 500}, w.Frame())
	assert.Equal(t, []entity.Rect{entity.NewRect(600, 500)}, view.setCalls)
}

func TestResizeWithoutRecenterClamps(t *testing.T) {
	surface := &fakeSurface{frame: entity.Rect{X: 50, Y: 60, W: 400, H: 300}}
	view := &fakeView{bounds: entity.NewRect(400, 300)}
	w := New(context.Background(), surface, Options{Constraints: entity.SizeConstraints{MaxW: 800, MaxH: 600}})
	require.NoError(t, w.Attach(view))

	view.resize(1200, 900)

	assert.Equal(t, entity.Rect{X: 50, Y: 60, W: 800, H: 600}, w.Frame())
	assert.Equal(t, entity.NewRect(800, 600), view.bounds)
}

func TestNativeResized(t *testing.T) {
	surface := &fakeSurface{frame: entity.Rect{X: 5, Y: 5, W: 400, H: 300}}
	view := &fakeView{bounds: entity.NewRect(400, 300)}
	w := New(context.Background(), surface, Options{})
	require.NoError(t, w.Attach(view))

	w.NativeResized(420, 310)

	assert.Equal(t, entity.Rect{X: 5, Y: 5, W: 420, H: 310}, w.Frame())
	assert.Equal(t, entity.NewRect(420, 310), view.bounds)
}

func TestCloseDetachesAndDropsPendingResizes(t *testing.T) {
	var queue []func()
	surface := &fakeSurface{frame: entity.NewRect(400, 300)}
	view := &fakeView{bounds: entity.NewRect(400, 300)}
	w := New(context.Background(), surface, Options{Post: func(fn func()) { queue = append(queue, fn) }})
	require.NoError(t, w.Attach(view))

	view.resize(800, 600)
	require.NoError(t, w.Close())
	for _, fn := range queue {
		fn()
	}

	assert.False(t, view.attached)
	assert.Nil(t, view.resize)
	assert.Equal(t, entity.NewRect(400, 300), view.bounds)
	require.NoError(t, w.Close())
}
