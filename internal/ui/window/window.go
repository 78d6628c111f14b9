// Package window glues a web view to the top-level window of a standalone
// host: it owns the window geometry and applies the host's sizing policy
// to page resize requests.
package window

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/plugview/internal/application/nativeview"
	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/logging"
	"github.com/bnema/plugview/internal/ui/mainloop"
)

// View is the part of nativeview.NativeWebView a window drives.
type View interface {
	AttachToParent(parent port.NativeHandle) error
	DetachFromParent() error
	IsAttached() bool
	SetBounds(r entity.Rect)
	Bounds() entity.Rect
	SetResizeHandler(h nativeview.ResizeHandler)
}

var _ View = (*nativeview.NativeWebView)(nil)

// Options is the sizing policy of a window.
type Options struct {
	Constraints entity.SizeConstraints
	// RecenterOnResize keeps the window centered on its previous center
	// when the page asks for a new size.
	RecenterOnResize bool
	// Post schedules work on the UI loop. Resize bursts are merged per
	// window before they reach the view.
	Post func(func())
}

// Window owns a host surface and the view embedded in it.
type Window struct {
	surface   port.HostSurface
	opts      Options
	coalescer *mainloop.Coalescer
	key       string
	view      View
	logger    zerolog.Logger
}

func New(ctx context.Context, surface port.HostSurface, opts Options) *Window {
	post := opts.Post
	if post == nil {
		post = func(fn func()) { fn() }
	}

	return &Window{
		surface:   surface,
		opts:      opts,
		coalescer: mainloop.NewCoalescer(post),
		key:       fmt.Sprintf("resize:%p", surface),
		logger:    logging.FromContext(ctx).With().Str("component", "window").Logger(),
	}
}

// Attach installs the window's resize policy on view, embeds it and sizes
// the window to the view.
func (w *Window) Attach(view View) error {
	if w.view != nil {
		return port.ErrAlreadyAttached
	}

	view.SetResizeHandler(w.RequestResize)
	if err := view.AttachToParent(w.surface.Handle()); err != nil {
		view.SetResizeHandler(nil)
		return fmt.Errorf("attach view to window: %w", err)
	}
	w.view = view

	b := view.Bounds()
	cw, ch := w.opts.Constraints.Clamp(b.W, b.H)
	w.surface.SetFrame(w.surface.Frame().WithSize(cw, ch))
	if cw != b.W || ch != b.H {
		view.SetBounds(entity.NewRect(cw, ch))
	}

	w.logger.Debug().Stringer("frame", w.surface.Frame()).Msg("view attached")
	return nil
}

// RequestResize handles a page resize request. Bursts collapse into the
// latest request.
func (w *Window) RequestResize(width, height int) {
	w.coalescer.Post(w.key, func() {
		w.applyResize(width, height)
	})
}

func (w *Window) applyResize(width, height int) {
	if w.view == nil {
		return
	}

	cw, ch := w.opts.Constraints.Clamp(width, height)
	frame := w.surface.Frame()
	if w.opts.RecenterOnResize {
		frame = frame.Centered(cw, ch)
	} else {
		frame = frame.WithSize(cw, ch)
	}

	w.surface.SetFrame(frame)
	w.view.SetBounds(entity.NewRect(cw, ch))

	w.logger.Debug().
		Int("requested_w", width).
		Int("requested_h", height).
		Stringer("frame", frame).
		Msg("page resize applied")
}

// NativeResized follows a resize performed by the window manager.
func (w *Window) NativeResized(width, height int) {
	if w.view == nil {
		return
	}
	w.surface.SetFrame(w.surface.Frame().WithSize(width, height))
	w.view.SetBounds(entity.NewRect(width, height))
}

// Frame returns the window geometry in screen coordinates.
func (w *Window) Frame() entity.Rect {
	return w.surface.Frame()
}

// Close detaches the view and drops pending resizes.
func (w *Window) Close() error {
	w.coalescer.Destroy()
	if w.view == nil {
		return nil
	}

	view := w.view
	w.view = nil
	view.SetResizeHandler(nil)
	if !view.IsAttached() {
		return nil
	}
	if err := view.DetachFromParent(); err != nil {
		return fmt.Errorf("detach view from window: %w", err)
	}
	return nil
}
