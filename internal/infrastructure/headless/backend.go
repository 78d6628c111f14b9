// Package headless implements a web view backend without a display.
//
// Pages run in an embedded JavaScript runtime (sobek). HTML is not laid out;
// inline scripts are extracted and executed in document order, which is
// enough to drive the bridge protocol in tests, CI and the console tool.
package headless

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grafana/sobek"
	"github.com/rs/zerolog"

	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/bridge"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/domain/url"
	"github.com/bnema/plugview/internal/logging"
)

// LoadMode tells how the last navigation was performed.
type LoadMode string

const (
	LoadModeNone LoadMode = ""
	// LoadModeRaw means content bytes were loaded directly (data:, file:).
	LoadModeRaw LoadMode = "raw"
	// LoadModeNavigate means a remote navigation was issued.
	LoadModeNavigate LoadMode = "navigate"
)

// Backend is a port.Backend backed by a sobek runtime.
type Backend struct {
	logger    zerolog.Logger
	url       string
	bootstrap string
	callbacks port.BackendCallbacks
	post      port.PostFunc

	bounds   entity.Rect
	parent   port.NativeHandle
	attached bool
	closed   bool

	vm         *sobek.Runtime
	generation int
	depth      int
	outbox     []string

	mode        LoadMode
	title       string
	navigations []string
	loads       int
}

var _ port.Backend = (*Backend)(nil)
var _ port.Reloader = (*Backend)(nil)

func newBackend(ctx context.Context, params port.BackendParams) *Backend {
	post := params.Post
	if post == nil {
		post = func(fn func()) { fn() }
	}

	return &Backend{
		logger:    logging.FromContext(ctx).With().Str("component", "headless").Logger(),
		url:       params.URL,
		bootstrap: bridge.WithPlatformInjection(platformInjection, params.Bootstrap),
		callbacks: params.Callbacks,
		post:      post,
		bounds:    params.Bounds,
	}
}

// SetBounds resizes the simulated control.
func (b *Backend) SetBounds(r entity.Rect) {
	if b.closed {
		return
	}
	b.bounds = r
	b.syncViewport(false)
}

// Bounds returns the live size of the simulated control.
func (b *Backend) Bounds() entity.Rect {
	return b.bounds
}

// Resize simulates a window-manager driven resize: the live bounds change
// without SetBounds being called and the page receives a resize event.
func (b *Backend) Resize(w, h int) {
	if b.closed {
		return
	}
	b.bounds = b.bounds.WithSize(w, h)
	b.syncViewport(true)
}

// AttachToParent accepts any non-nil handle.
func (b *Backend) AttachToParent(parent port.NativeHandle) error {
	switch {
	case b.closed:
		return port.ErrBackendClosed
	case b.attached:
		return port.ErrAlreadyAttached
	case parent == nil:
		return port.ErrNilParent
	}
	b.parent = parent
	b.attached = true
	return nil
}

func (b *Backend) DetachFromParent() error {
	switch {
	case b.closed:
		return port.ErrBackendClosed
	case !b.attached:
		return port.ErrNotAttached
	}
	b.parent = nil
	b.attached = false
	return nil
}

// EvalJS runs script in the current page. Scripts issued before the first
// navigation started are dropped.
func (b *Backend) EvalJS(script string) {
	if b.closed {
		return
	}
	if b.vm == nil {
		b.logger.Debug().Msg("dropping script evaluation before page load")
		return
	}
	b.run("eval", script)
}

func (b *Backend) ExecuteJS(function, param string) {
	b.EvalJS(bridge.FunctionCall(function, param))
}

// Reload re-runs the navigation, bootstrap script included.
func (b *Backend) Reload() error {
	if b.closed {
		return port.ErrBackendClosed
	}
	b.schedule()
	return nil
}

// Navigate loads a new URL.
func (b *Backend) Navigate(rawURL string) error {
	if b.closed {
		return port.ErrBackendClosed
	}
	if url.Classify(rawURL) == url.KindInvalid {
		return fmt.Errorf("navigate: empty url")
	}
	b.url = rawURL
	b.schedule()
	return nil
}

// Close removes the native message channel and releases the runtime.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.outbox = nil
	if b.vm != nil {
		if err := b.vm.GlobalObject().Delete(nativePostFunction); err != nil {
			b.logger.Debug().Err(err).Msg("failed to remove native post function")
		}
		b.vm.Interrupt("web view closed")
		b.vm = nil
	}
	b.generation++
	return nil
}

// LoadMode reports how the last navigation loaded its content.
func (b *Backend) LoadMode() LoadMode { return b.mode }

// Attached reports whether the control has a parent.
func (b *Backend) Attached() bool { return b.attached }

// Parent returns the current parent handle.
func (b *Backend) Parent() port.NativeHandle { return b.parent }

// Title returns the <title> of the loaded page.
func (b *Backend) Title() string { return b.title }

// URL returns the URL of the current page.
func (b *Backend) URL() string { return b.url }

// Navigations lists every remote URL navigated to.
func (b *Backend) Navigations() []string {
	return append([]string(nil), b.navigations...)
}

// Loads counts completed navigations.
func (b *Backend) Loads() int { return b.loads }

// Global exports a global variable of the page, or nil.
func (b *Backend) Global(name string) any {
	if b.vm == nil {
		return nil
	}
	v := b.vm.Get(name)
	if v == nil || sobek.IsUndefined(v) || sobek.IsNull(v) {
		return nil
	}
	return v.Export()
}

// schedule queues a navigation of the current URL on the UI loop.
func (b *Backend) schedule() {
	b.generation++
	gen := b.generation
	b.post(func() {
		if b.closed || gen != b.generation {
			return
		}
		b.navigate()
	})
}

func (b *Backend) navigate() {
	gen := b.generation
	b.newRuntime(gen)
	b.title = ""

	log := b.logger.With().Str("url", b.url).Logger()

	b.run("bootstrap", b.bootstrap)

	switch url.Classify(b.url) {
	case url.KindData:
		b.mode = LoadModeRaw
		data, err := url.DecodeDataURI(b.url)
		if err != nil {
			log.Error().Err(err).Msg("failed to decode data URI")
			break
		}
		b.loadContent(data.MIMEType, data.Data, "")
	case url.KindFile:
		b.mode = LoadModeRaw
		path, err := url.FilePath(b.url)
		if err != nil {
			log.Error().Err(err).Msg("invalid file URI")
			break
		}
		content, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Msg("failed to read page")
			break
		}
		b.loadContent(url.MIMEFromPath(path), content, filepath.Dir(path))
	default:
		b.mode = LoadModeNavigate
		b.navigations = append(b.navigations, b.url)
		log.Debug().Msg("remote navigation recorded, content not fetched")
	}

	if b.closed || gen != b.generation {
		return
	}
	b.run("load-events", loadEventsScript)

	b.loads++
	log.Debug().Str("mode", string(b.mode)).Msg("load finished")
	if b.callbacks.LoadFinished != nil {
		b.callbacks.LoadFinished()
	}
}

func (b *Backend) loadContent(mime string, content []byte, baseDir string) {
	switch {
	case url.IsJavaScript(mime):
		b.run("page", string(content))
	case url.IsHTML(mime):
		doc, err := parseDocument(content)
		if err != nil {
			b.logger.Warn().Err(err).Msg("html parse error, running scripts found so far")
		}
		if doc.ModuleScripts > 0 {
			b.logger.Warn().Int("count", doc.ModuleScripts).Msg("module scripts are not supported, skipping")
		}
		b.title = doc.Title
		if doc.Title != "" && b.vm != nil {
			b.run("title", "document.title = "+`"`+bridge.EscapeJSLiteral(doc.Title)+`";`)
		}
		for i, s := range doc.Scripts {
			code := s.Code
			if s.Src != "" {
				src, err := b.resolveScript(s.Src, baseDir)
				if err != nil {
					b.logger.Warn().Err(err).Str("src", s.Src).Msg("skipping external script")
					continue
				}
				code = src
			}
			b.run(fmt.Sprintf("script[%d]", i), code)
		}
	default:
		b.logger.Debug().Str("mime", mime).Msg("content has no scripts to run")
	}
}

func (b *Backend) resolveScript(src, baseDir string) (string, error) {
	switch url.Classify(src) {
	case url.KindData:
		data, err := url.DecodeDataURI(src)
		if err != nil {
			return "", err
		}
		return string(data.Data), nil
	case url.KindFile:
		path, err := url.FilePath(src)
		if err != nil {
			return "", err
		}
		content, err := os.ReadFile(path)
		return string(content), err
	}

	if baseDir == "" || filepath.IsAbs(src) || hasScheme(src) {
		return "", errors.New("external scripts are only loaded relative to file pages")
	}
	content, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(src)))
	return string(content), err
}

func (b *Backend) newRuntime(gen int) {
	vm := sobek.New()

	if err := vm.Set(nativePostFunction, func(msg string) {
		if b.closed || gen != b.generation {
			return
		}
		b.outbox = append(b.outbox, msg)
	}); err != nil {
		b.logger.Error().Err(err).Msg("failed to install native post function")
	}

	if err := vm.Set("setTimeout", func(call sobek.FunctionCall) sobek.Value {
		fn, ok := sobek.AssertFunction(call.Argument(0))
		if !ok {
			return sobek.Undefined()
		}
		b.post(func() {
			if b.closed || gen != b.generation {
				return
			}
			b.call("timer", fn)
		})
		return vm.ToValue(0)
	}); err != nil {
		b.logger.Error().Err(err).Msg("failed to install setTimeout")
	}

	console := vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		level := level
		_ = console.Set(level, func(call sobek.FunctionCall) sobek.Value {
			args := make([]any, 0, len(call.Arguments))
			for _, a := range call.Arguments {
				args = append(args, a.String())
			}
			b.logger.Trace().Str("level_js", level).Interface("args", args).Msg("page console")
			return sobek.Undefined()
		})
	}
	_ = vm.Set("console", console)

	b.vm = vm
	b.outbox = nil

	b.run("prelude", preludeScript)
	b.syncViewport(false)
}

// run evaluates src and flushes page messages once the outermost
// evaluation returns.
func (b *Backend) run(name, src string) {
	if b.vm == nil {
		return
	}
	b.depth++
	_, err := b.vm.RunScript(name, src)
	b.depth--

	if err != nil {
		b.logJSError(name, err)
	}
	b.flush()
}

func (b *Backend) call(name string, fn sobek.Callable) {
	if b.vm == nil {
		return
	}
	b.depth++
	_, err := fn(sobek.Undefined())
	b.depth--

	if err != nil {
		b.logJSError(name, err)
	}
	b.flush()
}

func (b *Backend) flush() {
	if b.depth > 0 || len(b.outbox) == 0 {
		return
	}
	msgs := b.outbox
	b.outbox = nil

	gen := b.generation
	for _, msg := range msgs {
		msg := msg
		b.post(func() {
			if b.closed || gen != b.generation || b.callbacks.MessageReceived == nil {
				return
			}
			b.callbacks.MessageReceived(msg)
		})
	}
}

func (b *Backend) syncViewport(fireResize bool) {
	if b.vm == nil {
		return
	}
	global := b.vm.GlobalObject()
	_ = global.Set("innerWidth", b.bounds.W)
	_ = global.Set("innerHeight", b.bounds.H)
	if fireResize {
		b.run("resize-event", "window.dispatchEvent({ type: 'resize' });")
	}
}

func (b *Backend) logJSError(name string, err error) {
	var interrupted *sobek.InterruptedError
	if errors.As(err, &interrupted) {
		return
	}
	var exc *sobek.Exception
	if errors.As(err, &exc) {
		b.logger.Warn().Str("script", name).Str("exception", exc.Error()).Msg("page script exception")
		return
	}
	b.logger.Warn().Err(err).Str("script", name).Msg("page script failed")
}

func hasScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			return i > 0
		case c == '/' || c == '?' || c == '#':
			return false
		}
	}
	return false
}
