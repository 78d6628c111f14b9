package port

import (
	"context"

	"github.com/bnema/plugview/internal/domain/entity"
)

// HostSurface is the top-level window a standalone host embeds a view in.
type HostSurface interface {
	// Handle is the parent handle passed to Backend.AttachToParent.
	Handle() NativeHandle
	// SetFrame moves and resizes the window in screen coordinates.
	SetFrame(r entity.Rect)
	Frame() entity.Rect
	SetTitle(title string)
}

// HostOptions describes the top-level window of a standalone host.
type HostOptions struct {
	Title     string
	Frame     entity.Rect
	Resizable bool
	// Pump runs queued UI tasks. Drivers call it from their event loop.
	Pump func() int
	// SetWaker lets the driver request a Pump whenever work is posted.
	SetWaker func(func())
	// Shutdown releases what ready built. Drivers call it once on the UI
	// thread while their event loop can still service it, including when
	// ready fails.
	Shutdown func()
}

// HostDriver is implemented by backend factories that own a platform
// event loop. RunHost opens a window, calls ready on the UI thread and
// blocks until ctx is done or the window is closed.
type HostDriver interface {
	RunHost(ctx context.Context, opts HostOptions, ready func(surface HostSurface) error) error
}
