//go:build webview

package webview

import (
	"context"
	"runtime"

	webviewgo "github.com/webview/webview_go"

	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/infrastructure/backends"
	"github.com/bnema/plugview/internal/logging"
)

func init() {
	backends.Register(NewFactory())
}

// Factory builds webview_go backends and runs their window loop.
type Factory struct {
	// Debug enables the developer tools of the control.
	Debug bool
}

var (
	_ port.BackendFactory = (*Factory)(nil)
	_ port.HostDriver     = (*Factory)(nil)
)

func NewFactory() *Factory { return &Factory{} }

func (f *Factory) Name() string { return Name }

func (f *Factory) Create(ctx context.Context, params port.BackendParams) (port.Backend, error) {
	return newBackend(ctx, params)
}

// RunHost runs the webview window loop on the calling thread. Posted UI
// tasks reach the loop through Dispatch.
func (f *Factory) RunHost(ctx context.Context, opts port.HostOptions, ready func(surface port.HostSurface) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w := webviewgo.New(f.Debug)
	defer w.Destroy()

	// Runs on this thread while the control still exists, before Destroy.
	shutdown := func() {
		if opts.Pump != nil {
			opts.Pump()
		}
		if opts.Shutdown != nil {
			opts.Shutdown()
		}
	}

	if opts.SetWaker != nil && opts.Pump != nil {
		opts.SetWaker(func() {
			w.Dispatch(func() { opts.Pump() })
		})
	}

	surface := &Surface{w: w, resizable: opts.Resizable}
	surface.SetTitle(opts.Title)
	surface.SetFrame(opts.Frame)
	if err := ready(surface); err != nil {
		shutdown()
		return err
	}

	stop := context.AfterFunc(ctx, func() {
		w.Dispatch(w.Terminate)
	})
	defer stop()

	logging.FromContext(ctx).Debug().Stringer("frame", surface.Frame()).Msg("webview host running")
	w.Run()
	shutdown()
	return nil
}

// Surface is the host window of a webview_go control.
type Surface struct {
	w         webviewgo.WebView
	frame     entity.Rect
	resizable bool
}

var _ port.HostSurface = (*Surface)(nil)

func (s *Surface) Handle() port.NativeHandle { return s }

// SetFrame resizes the window; webview_go has no window placement.
func (s *Surface) SetFrame(r entity.Rect) {
	s.frame = r
	hint := webviewgo.HintNone
	if !s.resizable {
		hint = webviewgo.HintFixed
	}
	s.w.SetSize(r.W, r.H, hint)
}

func (s *Surface) Frame() entity.Rect { return s.frame }

func (s *Surface) SetTitle(title string) { s.w.SetTitle(title) }
