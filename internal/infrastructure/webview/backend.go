//go:build webview

package webview

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/rs/zerolog"
	webviewgo "github.com/webview/webview_go"

	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/bridge"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/domain/url"
	"github.com/bnema/plugview/internal/logging"
)

const (
	loadFinishedFunction = "__plugviewLoadFinished"
	sizeChangedFunction  = "__plugviewSizeChanged"
)

// loadNotifier reports the page load and viewport resizes to the native
// side. webview_go has no size getter, so the viewport is the live size.
const loadNotifier = `window.addEventListener('load', function () {
    ` + loadFinishedFunction + `();
});
window.addEventListener('resize', function () {
    ` + sizeChangedFunction + `(window.innerWidth, window.innerHeight);
});
`

// Backend drives a webview_go control.
type Backend struct {
	params    port.BackendParams
	bootstrap string
	post      port.PostFunc
	logger    zerolog.Logger

	w      webviewgo.WebView
	owned  bool // created for an unsafe.Pointer parent, destroyed on detach
	bounds entity.Rect
	closed bool
}

var (
	_ port.Backend  = (*Backend)(nil)
	_ port.Reloader = (*Backend)(nil)
)

func newBackend(ctx context.Context, params port.BackendParams) (*Backend, error) {
	if url.Classify(params.URL) == url.KindInvalid {
		return nil, fmt.Errorf("%w: invalid URL %q", port.ErrCreateFailed, params.URL)
	}
	post := params.Post
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Backend{
		params:    params,
		bootstrap: bridge.WithPlatformInjection(loadNotifier, params.Bootstrap),
		post:      post,
		bounds:    params.Bounds,
		logger:    logging.FromContext(ctx).With().Str("component", "webview").Logger(),
	}, nil
}

func (b *Backend) SetBounds(r entity.Rect) {
	b.bounds = r
	if b.w != nil && !b.closed {
		b.w.SetSize(r.W, r.H, webviewgo.HintNone)
	}
}

func (b *Backend) Bounds() entity.Rect { return b.bounds }

// sizeChanged records a viewport size reported by the page.
func (b *Backend) sizeChanged(w, h int) {
	if b.closed || w <= 0 || h <= 0 {
		return
	}
	b.bounds.W, b.bounds.H = w, h
}

// AttachToParent accepts a *Surface or a native window unsafe.Pointer.
func (b *Backend) AttachToParent(parent port.NativeHandle) error {
	if b.closed {
		return port.ErrBackendClosed
	}
	if b.w != nil {
		return port.ErrAlreadyAttached
	}

	switch p := parent.(type) {
	case *Surface:
		b.w = p.w
	case unsafe.Pointer:
		w := webviewgo.NewWindow(false, p)
		if w == nil {
			return fmt.Errorf("%w: webview_create returned NULL", port.ErrCreateFailed)
		}
		b.w = w
		b.owned = true
	default:
		return fmt.Errorf("%w: %T", port.ErrUnsupportedParent, parent)
	}

	if err := b.bind(); err != nil {
		b.release()
		return err
	}
	b.w.Init(b.bootstrap)
	b.w.SetSize(b.bounds.W, b.bounds.H, webviewgo.HintNone)
	b.navigate()
	return nil
}

func (b *Backend) bind() error {
	if err := b.w.Bind(bridge.InternalFunction, func(msg string) {
		b.post(func() {
			if b.closed || b.params.Callbacks.MessageReceived == nil {
				return
			}
			b.params.Callbacks.MessageReceived(msg)
		})
	}); err != nil {
		return fmt.Errorf("bind %s: %w", bridge.InternalFunction, err)
	}
	if err := b.w.Bind(loadFinishedFunction, func() {
		b.post(func() {
			if b.closed {
				return
			}
			b.logger.Debug().Msg("load finished")
			if b.params.Callbacks.LoadFinished != nil {
				b.params.Callbacks.LoadFinished()
			}
		})
	}); err != nil {
		return fmt.Errorf("bind %s: %w", loadFinishedFunction, err)
	}
	if err := b.w.Bind(sizeChangedFunction, func(w, h int) {
		b.post(func() { b.sizeChanged(w, h) })
	}); err != nil {
		return fmt.Errorf("bind %s: %w", sizeChangedFunction, err)
	}
	return nil
}

// navigate loads HTML from data: and file: URLs as a string; anything
// else is navigated to.
func (b *Backend) navigate() {
	switch url.Classify(b.params.URL) {
	case url.KindData:
		data, err := url.DecodeDataURI(b.params.URL)
		if err != nil {
			b.logger.Error().Err(err).Msg("failed to decode data URI")
			return
		}
		if url.IsHTML(data.MIMEType) {
			b.w.SetHtml(string(data.Data))
			return
		}
	case url.KindFile:
		if page, ok := b.readFilePage(); ok {
			b.w.SetHtml(page)
			return
		}
	}
	b.w.Navigate(b.params.URL)
}

func (b *Backend) readFilePage() (string, bool) {
	content, ok, err := url.ReadHTMLFile(b.params.URL)
	if err != nil {
		b.logger.Warn().Err(err).Msg("cannot read page, navigating instead")
		return "", false
	}
	return string(content), ok
}

func (b *Backend) DetachFromParent() error {
	if b.w == nil {
		return port.ErrNotAttached
	}
	b.release()
	return nil
}

func (b *Backend) release() {
	if b.w == nil {
		return
	}
	_ = b.w.Unbind(bridge.InternalFunction)
	_ = b.w.Unbind(loadFinishedFunction)
	_ = b.w.Unbind(sizeChangedFunction)
	if b.owned {
		b.w.Destroy()
	} else {
		b.w.Navigate("about:blank")
	}
	b.w = nil
	b.owned = false
}

// EvalJS is dropped while the view has no control.
func (b *Backend) EvalJS(script string) {
	if b.closed {
		return
	}
	if b.w == nil {
		b.logger.Debug().Msg("no control yet, script dropped")
		return
	}
	b.w.Eval(script)
}

func (b *Backend) ExecuteJS(function, param string) {
	b.EvalJS(bridge.FunctionCall(function, param))
}

func (b *Backend) Reload() error {
	if b.closed {
		return port.ErrBackendClosed
	}
	if b.w == nil {
		return port.ErrNotAttached
	}
	b.navigate()
	return nil
}

func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.release()
	b.closed = true
	return nil
}
