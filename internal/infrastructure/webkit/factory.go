//go:build webkitgtk

package webkit

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/infrastructure/backends"
	"github.com/bnema/plugview/internal/logging"
)

const applicationID = "com.github.bnema.plugview"

func init() {
	backends.Register(NewFactory())
}

// Factory builds WebKitGTK backends and runs the GTK application that
// hosts them.
type Factory struct{}

var (
	_ port.BackendFactory = (*Factory)(nil)
	_ port.HostDriver     = (*Factory)(nil)
)

func NewFactory() *Factory { return &Factory{} }

func (f *Factory) Name() string { return Name }

// Create must run on the GTK main thread.
func (f *Factory) Create(ctx context.Context, params port.BackendParams) (port.Backend, error) {
	b, err := newBackend(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := b.load(); err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}

// RunHost runs a GtkApplication with one window until it is closed or ctx
// is done. Posted UI tasks are pumped from GLib idle callbacks.
func (f *Factory) RunHost(ctx context.Context, opts port.HostOptions, ready func(surface port.HostSurface) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := logging.FromContext(ctx)

	app := gtk.NewApplication(applicationID, gio.ApplicationNonUnique)

	if opts.SetWaker != nil && opts.Pump != nil {
		opts.SetWaker(func() {
			glib.IdleAdd(func() bool {
				opts.Pump()
				return false
			})
		})
	}

	// Views are detached and destroyed while the window still exists:
	// before a close request is honoured, or from the idle callback that
	// quits the application.
	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			if opts.Pump != nil {
				opts.Pump()
			}
			if opts.Shutdown != nil {
				opts.Shutdown()
			}
			log.Debug().Msg("gtk host torn down")
		})
	}
	app.ConnectShutdown(shutdown)

	var readyErr error
	app.ConnectActivate(func() {
		surface := newSurface(app, opts)
		surface.window.ConnectCloseRequest(func() bool {
			shutdown()
			return false
		})
		if err := ready(surface); err != nil {
			readyErr = err
			shutdown()
			app.Quit()
			return
		}
		surface.window.Present()
		log.Debug().Stringer("frame", surface.Frame()).Msg("gtk host window presented")
	})

	stop := context.AfterFunc(ctx, func() {
		glib.IdleAdd(func() bool {
			shutdown()
			app.Quit()
			return false
		})
	})
	defer stop()

	if code := app.Run([]string{os.Args[0]}); code != 0 {
		return fmt.Errorf("gtk application exited with status %d", code)
	}
	return readyErr
}

// Surface is a GtkApplicationWindow with a GtkFixed child views attach to.
type Surface struct {
	window *gtk.ApplicationWindow
	fixed  *gtk.Fixed
	frame  entity.Rect
}

var _ port.HostSurface = (*Surface)(nil)

func newSurface(app *gtk.Application, opts port.HostOptions) *Surface {
	s := &Surface{
		window: gtk.NewApplicationWindow(app),
		fixed:  gtk.NewFixed(),
	}
	s.window.SetChild(s.fixed)
	s.window.SetResizable(opts.Resizable)
	s.SetTitle(opts.Title)
	s.SetFrame(opts.Frame)
	return s
}

// Handle returns the *gtk.Fixed views are placed in.
func (s *Surface) Handle() port.NativeHandle { return s.fixed }

// SetFrame resizes the window. GTK 4 leaves window placement to the
// compositor, so the origin is only recorded.
func (s *Surface) SetFrame(r entity.Rect) {
	s.frame = r
	s.window.SetDefaultSize(r.W, r.H)
}

// Frame follows the live window size once the window is mapped.
func (s *Surface) Frame() entity.Rect {
	r := s.frame
	if w, h := s.window.Width(), s.window.Height(); w > 0 && h > 0 {
		r.W, r.H = w, h
	}
	return r
}

func (s *Surface) SetTitle(title string) { s.window.SetTitle(title) }
