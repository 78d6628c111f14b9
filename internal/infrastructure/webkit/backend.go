//go:build webkitgtk

package webkit

import (
	"context"
	"fmt"

	javascriptcore "github.com/diamondburned/gotk4-webkitgtk/pkg/javascriptcore/v6"
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/bridge"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/domain/url"
	"github.com/bnema/plugview/internal/logging"
)

// Backend is a WebKitWebView embedded in a GTK container.
type Backend struct {
	view      *webkit.WebView
	ucm       *webkit.UserContentManager
	url       string
	bounds    entity.Rect
	focus     bool
	callbacks port.BackendCallbacks
	post      port.PostFunc
	logger    zerolog.Logger

	parent        port.NativeHandle
	messageSignal coreglib.SignalHandle
	loadSignal    coreglib.SignalHandle
	closed        bool
}

var (
	_ port.Backend  = (*Backend)(nil)
	_ port.Reloader = (*Backend)(nil)
)

func newBackend(ctx context.Context, params port.BackendParams) (*Backend, error) {
	view := webkit.NewWebView()
	if view == nil {
		return nil, fmt.Errorf("%w: webkit_web_view_new returned NULL", port.ErrCreateFailed)
	}
	ucm := view.UserContentManager()
	if ucm == nil {
		return nil, fmt.Errorf("%w: web view has no user content manager", port.ErrCreateFailed)
	}

	post := params.Post
	if post == nil {
		post = func(fn func()) { fn() }
	}

	b := &Backend{
		view:      view,
		ucm:       ucm,
		url:       params.URL,
		bounds:    params.Bounds,
		focus:     params.WantsKeyboardFocus,
		callbacks: params.Callbacks,
		post:      post,
		logger:    logging.FromContext(ctx).With().Str("component", "webkitgtk").Logger(),
	}

	ucm.AddScript(webkit.NewUserScript(
		bridge.WithPlatformInjection(bridge.WebKitInjection, params.Bootstrap),
		webkit.UserContentInjectTopFrame,
		webkit.UserScriptInjectAtDocumentStart,
		nil,
		nil,
	))

	// Connect to the signal BEFORE registering the handler, as the WebKit
	// documentation recommends.
	b.messageSignal = ucm.ConnectScriptMessageReceived(b.scriptMessage)
	if !ucm.RegisterScriptMessageHandler(bridge.HandlerName, "") {
		return nil, fmt.Errorf("%w: failed to register script message handler %q", port.ErrCreateFailed, bridge.HandlerName)
	}

	b.loadSignal = view.ConnectLoadChanged(func(event webkit.LoadEvent) {
		if event != webkit.LoadFinished || b.closed {
			return
		}
		b.logger.Debug().Str("uri", view.URI()).Msg("load finished")
		if b.callbacks.LoadFinished != nil {
			b.callbacks.LoadFinished()
		}
	})

	view.SetFocusable(b.focus)
	view.SetSizeRequest(b.bounds.W, b.bounds.H)
	return b, nil
}

func (b *Backend) scriptMessage(value *javascriptcore.Value) {
	if b.closed || value == nil {
		return
	}
	raw := value.String()
	b.post(func() {
		if b.closed || b.callbacks.MessageReceived == nil {
			return
		}
		b.callbacks.MessageReceived(raw)
	})
}

// load starts the initial navigation. data: URLs are decoded and loaded as
// raw content; everything else goes through the network stack.
func (b *Backend) load() error {
	switch url.Classify(b.url) {
	case url.KindInvalid:
		return fmt.Errorf("%w: invalid URL %q", port.ErrCreateFailed, b.url)
	case url.KindData:
		data, err := url.DecodeDataURI(b.url)
		if err != nil {
			return fmt.Errorf("%w: %w", port.ErrCreateFailed, err)
		}
		charset := data.Charset
		if charset == "" {
			charset = "UTF-8"
		}
		b.view.LoadBytes(glib.NewBytesWithGo(data.Data), data.MIMEType, charset, "")
	default:
		b.view.LoadURI(b.url)
	}
	return nil
}

func (b *Backend) SetBounds(r entity.Rect) {
	if b.closed {
		return
	}
	b.bounds = r
	b.view.SetSizeRequest(r.W, r.H)
	if fixed, ok := b.parent.(*gtk.Fixed); ok {
		fixed.Move(b.view, float64(r.X), float64(r.Y))
	}
}

// Bounds reports the allocated size of the widget once GTK has laid it
// out, so window manager resizes are seen without a SetBounds call.
func (b *Backend) Bounds() entity.Rect {
	r := b.bounds
	if b.closed || b.parent == nil {
		return r
	}
	if w, h := b.view.Width(), b.view.Height(); w > 0 && h > 0 {
		r.W, r.H = w, h
	}
	return r
}

// AttachToParent accepts a *gtk.Fixed or a *gtk.Box.
func (b *Backend) AttachToParent(parent port.NativeHandle) error {
	if b.closed {
		return port.ErrBackendClosed
	}
	switch p := parent.(type) {
	case *gtk.Fixed:
		p.Put(b.view, float64(b.bounds.X), float64(b.bounds.Y))
	case *gtk.Box:
		p.Append(b.view)
	default:
		return fmt.Errorf("%w: %T", port.ErrUnsupportedParent, parent)
	}
	b.parent = parent

	if b.focus {
		b.view.GrabFocus()
	}
	return nil
}

func (b *Backend) DetachFromParent() error {
	switch p := b.parent.(type) {
	case *gtk.Fixed:
		p.Remove(b.view)
	case *gtk.Box:
		p.Remove(b.view)
	case nil:
		return port.ErrNotAttached
	}
	b.parent = nil
	return nil
}

func (b *Backend) EvalJS(script string) {
	if b.closed {
		return
	}
	b.view.EvaluateJavascript(context.Background(), script, -1, "", "", func(res gio.AsyncResulter) {
		if _, err := b.view.EvaluateJavascriptFinish(res); err != nil {
			b.logger.Warn().Err(err).Msg("script evaluation failed")
		}
	})
}

func (b *Backend) ExecuteJS(function, param string) {
	b.EvalJS(bridge.FunctionCall(function, param))
}

func (b *Backend) Reload() error {
	if b.closed {
		return port.ErrBackendClosed
	}
	b.view.Reload()
	return nil
}

// Close unregisters the message handler before the view goes away.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	if b.parent != nil {
		_ = b.DetachFromParent()
	}
	b.ucm.UnregisterScriptMessageHandler(bridge.HandlerName, "")
	b.ucm.HandlerDisconnect(b.messageSignal)
	b.view.HandlerDisconnect(b.loadSignal)
	b.closed = true
	b.view.TryClose()
	return nil
}
