package cli

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/plugview/internal/app/editor"
	"github.com/bnema/plugview/internal/application/nativeview"
	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/infrastructure/backends"
	"github.com/bnema/plugview/internal/infrastructure/config"
	"github.com/bnema/plugview/internal/logging"
	"github.com/bnema/plugview/internal/ui/mainloop"
	"github.com/bnema/plugview/internal/ui/window"
)

// HostParams configures a standalone editor host.
type HostParams struct {
	Config  *config.Config
	Factory port.BackendFactory
	// Manager, when set, is watched for config changes while the host runs.
	Manager *config.Manager
	// URL overrides the configured page. Empty falls back to the config and
	// then to the built-in demo page.
	URL        string
	UserScript string
	// Ready runs on the UI loop once the view is attached.
	Ready func(h *Host)
}

// Host is one running standalone editor.
type Host struct {
	Loop    *mainloop.Loop
	Surface port.HostSurface
	Window  *window.Window
	View    *nativeview.NativeWebView
	Editor  *editor.Editor

	closed   bool
	closeErr error
}

// RunHost opens a window on the backend's event loop, embeds the editor
// page and blocks until the page asks to close or ctx ends.
func RunHost(ctx context.Context, p HostParams) error {
	driver, ok := backends.HostDriver(p.Factory)
	if !ok {
		return fmt.Errorf("%s backend cannot host a window", p.Factory.Name())
	}

	ctx = logging.WithComponent(ctx, "host")
	log := logging.FromContext(ctx)
	cfg := p.Config

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h := &Host{Loop: mainloop.New()}
	h.Editor = editor.New(ctx, editor.NewMemoryStore(editor.GainParameter()), editor.Options{
		DedupeState: cfg.Messaging.DedupeState,
		OnClose: func() {
			log.Info().Msg("editor asked to close")
			cancel()
		},
	})

	pageURL := p.URL
	if pageURL == "" {
		pageURL = cfg.WebView.URL
	}
	if pageURL == "" {
		pageURL = editor.DemoPageURL()
	}

	g, gctx := errgroup.WithContext(ctx)
	if p.Manager != nil {
		g.Go(func() error {
			return h.watchConfig(gctx, p.Manager)
		})
	}

	opts := port.HostOptions{
		Title:     cfg.Window.Title,
		Frame:     cfg.WebView.Size(),
		Resizable: cfg.Window.Resizable,
		Pump:      h.Loop.RunPending,
		SetWaker:  h.Loop.SetWaker,
		Shutdown: func() {
			h.closeErr = h.close()
		},
	}

	log.Info().Str("backend", p.Factory.Name()).Msg("starting editor host")

	runErr := driver.RunHost(gctx, opts, func(surface port.HostSurface) error {
		return h.open(gctx, surface, p, pageURL)
	})
	cancel()

	// Drivers tear down on their UI thread; this only covers a driver
	// that returned before it could.
	if !h.closed {
		h.closeErr = h.close()
	}
	waitErr := g.Wait()

	if runErr != nil {
		return fmt.Errorf("run %s host: %w", p.Factory.Name(), runErr)
	}
	return errors.Join(h.closeErr, waitErr)
}

func (h *Host) open(ctx context.Context, surface port.HostSurface, p HostParams, pageURL string) error {
	cfg := p.Config
	h.Surface = surface
	h.Window = window.New(ctx, surface, window.Options{
		Constraints:      cfg.Window.Constraints(),
		RecenterOnResize: cfg.Window.RecenterOnResize,
		Post:             h.Loop.Post,
	})

	wcfg := nativeview.WebViewConfiguration{
		URL:                pageURL,
		Size:               cfg.WebView.Size(),
		WantsKeyboardFocus: cfg.WebView.WantsKeyboardFocus,
		UserScript:         p.UserScript,
		ForwardConsole:     cfg.WebView.ForwardConsole,
	}
	h.Editor.Configure(&wcfg)

	opts := []nativeview.Option{nativeview.WithPost(h.Loop.Post)}
	if cfg.WebView.StrictAssertions {
		opts = append(opts, nativeview.WithStrictAssertions())
	}

	view, err := nativeview.New(ctx, wcfg, p.Factory, opts...)
	if err != nil {
		return err
	}
	h.View = view
	h.Editor.Bind(view)

	if err := h.Window.Attach(view); err != nil {
		return err
	}

	if p.Ready != nil {
		p.Ready(h)
	}
	return nil
}

// close detaches before destroying; the loop is drained last so queued
// callbacks observe a destroyed view.
func (h *Host) close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	var errs []error
	if h.Window != nil {
		errs = append(errs, h.Window.Close())
	}
	if h.View != nil {
		errs = append(errs, h.View.Destroy())
	}
	h.Loop.RunPending()
	h.Loop.Quit()
	return errors.Join(errs...)
}

// watchConfig retitles the window when the config file changes.
func (h *Host) watchConfig(ctx context.Context, mgr *config.Manager) error {
	log := logging.FromContext(ctx)

	mgr.OnConfigChange(func(cfg *config.Config) {
		title := cfg.Window.Title
		h.Loop.Post(func() {
			if h.Surface == nil {
				return
			}
			h.Surface.SetTitle(title)
			log.Debug().Str("title", title).Msg("window title reloaded")
		})
	})
	if err := mgr.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
		return nil
	}

	<-ctx.Done()
	return nil
}
