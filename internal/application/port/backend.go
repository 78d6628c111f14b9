// Package port defines application-layer interfaces for external capabilities.
// Ports abstract the platform web-view control so the bridge facade stays
// independent of a specific implementation (WebKitGTK, webview, headless).
package port

import (
	"context"
	"errors"

	"github.com/bnema/plugview/internal/domain/entity"
)

//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mock_port

var (
	// ErrAlreadyAttached is returned when attaching a view that already has a parent.
	ErrAlreadyAttached = errors.New("web view already attached to a parent")
	// ErrNotAttached is returned when detaching a view that has no parent.
	ErrNotAttached = errors.New("web view not attached to a parent")
	// ErrBackendClosed is returned by operations on a released control.
	ErrBackendClosed = errors.New("web view backend closed")
	// ErrNilParent is returned when a nil parent handle is supplied.
	ErrNilParent = errors.New("nil parent handle")
	// ErrCreateFailed wraps every failure to build a platform control.
	ErrCreateFailed = errors.New("failed to create web view control")
	// ErrUnsupportedParent is returned when a backend cannot use the handle type.
	ErrUnsupportedParent = errors.New("unsupported parent handle type")
)

// NativeHandle is an opaque reference to the platform surface a view is
// embedded in (a GTK container, a native window pointer, ...). Each backend
// documents the concrete types it accepts.
type NativeHandle any

// PostFunc schedules fn on the UI goroutine.
type PostFunc func(fn func())

// BackendCallbacks are invoked by a backend on the UI goroutine.
type BackendCallbacks struct {
	// LoadFinished fires once per completed top-level navigation.
	LoadFinished func()
	// MessageReceived receives raw "tag:payload" strings from the page.
	MessageReceived func(raw string)
}

// BackendParams carries everything a backend needs to build its control.
type BackendParams struct {
	Bounds             entity.Rect
	URL                string
	Bootstrap          string // runs at document start, before page scripts
	WantsKeyboardFocus bool
	Callbacks          BackendCallbacks
	// Post delivers asynchronous platform events to the UI goroutine.
	// Nil runs them inline.
	Post PostFunc
}

// Backend is the platform web-view control behind a NativeWebView.
//
// All methods are called from the UI goroutine and must not block.
// Script evaluation is fire-and-forget: failures are logged, never returned.
type Backend interface {
	SetBounds(r entity.Rect)
	Bounds() entity.Rect
	AttachToParent(parent NativeHandle) error
	DetachFromParent() error
	EvalJS(script string)
	ExecuteJS(function, param string)
	// Close unregisters the message channel and releases the control.
	Close() error
}

// Reloader is implemented by backends that can re-run the current navigation.
type Reloader interface {
	Reload() error
}

// BackendFactory builds backends. A failing Create is fatal for that view.
type BackendFactory interface {
	Name() string
	Create(ctx context.Context, params BackendParams) (Backend, error)
}
