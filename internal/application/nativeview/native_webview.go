// Package nativeview implements the web view facade used by plugin editors.
//
// A NativeWebView owns one platform control (a port.Backend) and speaks the
// bridge wire protocol with the page. Every method must be called from the
// UI goroutine.
package nativeview

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/bridge"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/logging"
)

// ErrDestroyed is returned by operations on a destroyed view.
var ErrDestroyed = errors.New("web view destroyed")

// State is the attachment state of a view.
type State int

const (
	StateConstructed State = iota
	StateAttached
	StateDetached
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateAttached:
		return "attached"
	case StateDetached:
		return "detached"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

var viewIDCounter atomic.Uint64

// NativeWebView is the platform independent web view facade.
type NativeWebView struct {
	id          uint64
	cfg         WebViewConfiguration
	opts        options
	backend     port.Backend
	backendName string
	logger      zerolog.Logger

	state         State
	resizeHandler ResizeHandler
	// loadPending records a load completion reported while the backend
	// was still being created.
	loadPending bool
	// boundsPending holds a resize requested before the backend existed.
	boundsPending *entity.Rect
}

// New validates cfg and builds the platform control eagerly. The bootstrap
// script is installed before the first navigation.
func New(ctx context.Context, cfg WebViewConfiguration, factory port.BackendFactory, opts ...Option) (*NativeWebView, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: no backend factory", port.ErrCreateFailed)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	id := viewIDCounter.Add(1)
	ctx = logging.WithComponent(ctx, "nativeview")
	ctx = logging.WithViewID(ctx, id)
	ctx = logging.WithBackend(ctx, factory.Name())

	v := &NativeWebView{
		id:            id,
		cfg:           cfg,
		opts:          o,
		backendName:   factory.Name(),
		logger:        *logging.FromContext(ctx),
		resizeHandler: o.resizeHandler,
	}

	params := port.BackendParams{
		Bounds: cfg.Size,
		URL:    cfg.URL,
		Bootstrap: bridge.Bootstrap(bridge.BootstrapOptions{
			ForwardConsole: cfg.ForwardConsole,
			UserScript:     cfg.UserScript,
		}),
		WantsKeyboardFocus: cfg.WantsKeyboardFocus,
		Callbacks: port.BackendCallbacks{
			LoadFinished:    v.finishLoading,
			MessageReceived: v.handleMessage,
		},
		Post: o.post,
	}

	backend, err := factory.Create(ctx, params)
	if err != nil {
		if errors.Is(err, port.ErrCreateFailed) {
			return nil, fmt.Errorf("create %s backend: %w", factory.Name(), err)
		}
		return nil, fmt.Errorf("create %s backend: %w: %w", factory.Name(), port.ErrCreateFailed, err)
	}
	if backend == nil {
		return nil, fmt.Errorf("create %s backend: %w: nil backend", factory.Name(), port.ErrCreateFailed)
	}
	v.backend = backend

	v.logger.Debug().
		Str("url", cfg.URL).
		Stringer("bounds", cfg.Size).
		Msg("web view created")

	if v.boundsPending != nil {
		r := *v.boundsPending
		v.boundsPending = nil
		v.SetBounds(r)
	}

	if v.loadPending {
		v.loadPending = false
		v.finishLoading()
	}

	return v, nil
}

// ID returns the process unique view identifier.
func (v *NativeWebView) ID() uint64 { return v.id }

// BackendName returns the name of the factory that built the control.
func (v *NativeWebView) BackendName() string { return v.backendName }

// State returns the current attachment state.
func (v *NativeWebView) State() State { return v.state }

// IsAttached reports whether the view currently has a parent.
func (v *NativeWebView) IsAttached() bool { return v.state == StateAttached }

// AttachToParent embeds the control in parent.
// Attaching an attached view is a protocol violation: it returns
// port.ErrAlreadyAttached without touching the backend.
func (v *NativeWebView) AttachToParent(parent port.NativeHandle) error {
	if v.state == StateDestroyed {
		return ErrDestroyed
	}
	if v.state == StateAttached {
		return v.violation(port.ErrAlreadyAttached)
	}
	if parent == nil {
		return port.ErrNilParent
	}

	if err := v.backend.AttachToParent(parent); err != nil {
		v.logger.Error().Err(err).Msg("attach failed")
		return fmt.Errorf("attach to parent: %w", err)
	}

	v.state = StateAttached
	v.logger.Debug().Msg("attached to parent")
	return nil
}

// DetachFromParent removes the control from its parent. The view keeps its
// page and can be attached again.
func (v *NativeWebView) DetachFromParent() error {
	if v.state == StateDestroyed {
		return ErrDestroyed
	}
	if v.state != StateAttached {
		return v.violation(port.ErrNotAttached)
	}

	if err := v.backend.DetachFromParent(); err != nil {
		v.logger.Error().Err(err).Msg("detach failed")
		return fmt.Errorf("detach from parent: %w", err)
	}

	v.state = StateDetached
	v.logger.Debug().Msg("detached from parent")
	return nil
}

// SetBounds moves and resizes the control within its parent.
func (v *NativeWebView) SetBounds(r entity.Rect) {
	if v.state == StateDestroyed {
		return
	}
	if v.backend == nil {
		v.boundsPending = &r
		return
	}
	v.backend.SetBounds(r)
}

// Bounds returns the control's current bounds.
func (v *NativeWebView) Bounds() entity.Rect {
	if v.state == StateDestroyed {
		return entity.Rect{}
	}
	if v.backend == nil {
		if v.boundsPending != nil {
			return *v.boundsPending
		}
		return v.cfg.Size
	}
	return v.backend.Bounds()
}

// SendMessage delivers text to the page's juceBridgeOnMessage function.
func (v *NativeWebView) SendMessage(text string) error {
	if v.state == StateDestroyed {
		return ErrDestroyed
	}
	v.backend.ExecuteJS(bridge.ReceiverFunction, text)
	return nil
}

// EvaluateJavascript runs script in the page without waiting for a result.
func (v *NativeWebView) EvaluateJavascript(script string) error {
	if v.state == StateDestroyed {
		return ErrDestroyed
	}
	v.backend.EvalJS(script)
	return nil
}

// Reload re-runs the current navigation when the backend supports it.
func (v *NativeWebView) Reload() error {
	if v.state == StateDestroyed {
		return ErrDestroyed
	}
	r, ok := v.backend.(port.Reloader)
	if !ok {
		return fmt.Errorf("%s backend does not support reload", v.backendName)
	}
	return r.Reload()
}

// SetResizeHandler replaces the resize handler. Nil restores the default,
// which resizes the view to the requested size at the origin.
func (v *NativeWebView) SetResizeHandler(h ResizeHandler) {
	v.resizeHandler = h
}

// Destroy detaches the view if needed, runs OnDestroy and releases the
// control. Calling it again is a no-op.
func (v *NativeWebView) Destroy() error {
	if v.state == StateDestroyed {
		return nil
	}

	if v.state == StateAttached {
		if err := v.backend.DetachFromParent(); err != nil {
			v.logger.Warn().Err(err).Msg("detach during destroy failed")
		}
		v.state = StateDetached
	}

	if v.cfg.OnDestroy != nil {
		v.cfg.OnDestroy()
	}

	v.state = StateDestroyed
	if err := v.backend.Close(); err != nil {
		return fmt.Errorf("close %s backend: %w", v.backendName, err)
	}

	v.logger.Debug().Msg("web view destroyed")
	return nil
}

func (v *NativeWebView) violation(err error) error {
	v.logger.Error().Err(err).Stringer("state", v.state).Msg("bridge protocol violation")
	if v.opts.strict {
		panic(err)
	}
	return err
}

// handleMessage dispatches a raw wire message from the page.
func (v *NativeWebView) handleMessage(raw string) {
	if v.state == StateDestroyed {
		return
	}

	tag, payload, ok := bridge.Decompose(raw)
	if !ok {
		v.logger.Debug().Str("raw", raw).Msg("dropping message without tag")
		return
	}

	switch {
	case tag.IsMessage():
		v.deliverMessage(payload)
	case tag == bridge.TagResize:
		w, h, ok := bridge.ParseResize(payload)
		if !ok {
			v.logger.Debug().Str("payload", payload).Msg("dropping malformed resize request")
			return
		}
		v.resize(w, h)
	case tag == bridge.TagLog:
		v.logConsole(bridge.ParseLog(payload))
	default:
		v.logger.Debug().Str("tag", string(tag)).Msg("dropping message with unknown tag")
	}
}

func (v *NativeWebView) deliverMessage(payload string) {
	if v.cfg.OnMessageReceived != nil {
		v.cfg.OnMessageReceived(payload)
	}
	for _, h := range v.opts.messageHandlers {
		h(payload)
	}
}

func (v *NativeWebView) resize(w, h int) {
	if v.resizeHandler != nil {
		v.resizeHandler(w, h)
		return
	}
	v.SetBounds(entity.NewRect(w, h))
}

func (v *NativeWebView) logConsole(level, text string) {
	var event *zerolog.Event
	switch level {
	case "error":
		event = v.logger.Error()
	case "warn":
		event = v.logger.Warn()
	case "debug":
		event = v.logger.Debug()
	default:
		event = v.logger.Info()
	}
	event.Str("source", "page-console").Str("level_js", level).Msg(text)
}

// finishLoading runs once per completed navigation.
func (v *NativeWebView) finishLoading() {
	if v.state == StateDestroyed {
		return
	}
	if v.backend == nil {
		v.loadPending = true
		return
	}

	v.logger.Debug().Msg("page load finished")

	if v.opts.loadFinished != nil {
		v.opts.loadFinished()
	}
	if v.cfg.OnLoad != nil {
		v.cfg.OnLoad(func(script string) {
			if v.state == StateDestroyed {
				return
			}
			v.backend.EvalJS(script)
		})
	}
}
