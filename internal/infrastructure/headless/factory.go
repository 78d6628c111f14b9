package headless

import (
	"context"

	"github.com/bnema/plugview/internal/application/port"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/domain/url"
	"github.com/bnema/plugview/internal/infrastructure/backends"
	"github.com/bnema/plugview/internal/logging"
)

// Name is the registry name of this backend.
const Name = "headless"

func init() {
	backends.Register(NewFactory())
}

// Factory builds headless backends and hosts them without a window.
type Factory struct{}

var (
	_ port.BackendFactory = (*Factory)(nil)
	_ port.HostDriver     = (*Factory)(nil)
)

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Name() string { return Name }

// Create builds the runtime state and queues the first navigation on the
// UI loop, so no page script runs before Create returns when params.Post
// is asynchronous.
func (f *Factory) Create(ctx context.Context, params port.BackendParams) (port.Backend, error) {
	if url.Classify(params.URL) == url.KindInvalid {
		return nil, port.ErrCreateFailed
	}
	b := newBackend(ctx, params)
	b.schedule()
	return b, nil
}

// RunHost pumps the UI loop until ctx is done. The surface only records
// the geometry and title it is given.
func (f *Factory) RunHost(ctx context.Context, opts port.HostOptions, ready func(surface port.HostSurface) error) error {
	log := logging.FromContext(ctx)

	wake := make(chan struct{}, 1)
	if opts.SetWaker != nil {
		opts.SetWaker(func() {
			select {
			case wake <- struct{}{}:
			default:
			}
		})
	}

	shutdown := func() {
		if opts.Shutdown != nil {
			opts.Shutdown()
		}
	}

	surface := NewSurface(opts.Title, opts.Frame)
	if err := ready(surface); err != nil {
		shutdown()
		return err
	}
	log.Debug().Stringer("frame", surface.Frame()).Msg("headless host running")

	pump := func() {
		if opts.Pump != nil {
			opts.Pump()
		}
	}
	for {
		pump()
		select {
		case <-ctx.Done():
			pump()
			shutdown()
			return nil
		case <-wake:
		}
	}
}

// Surface is a window stand-in for headless hosts.
type Surface struct {
	title  string
	frame  entity.Rect
	frames []entity.Rect
}

var _ port.HostSurface = (*Surface)(nil)

func NewSurface(title string, frame entity.Rect) *Surface {
	return &Surface{title: title, frame: frame}
}

// Handle returns the surface itself; headless backends accept any handle.
func (s *Surface) Handle() port.NativeHandle { return s }

func (s *Surface) SetFrame(r entity.Rect) {
	s.frame = r
	s.frames = append(s.frames, r)
}

func (s *Surface) Frame() entity.Rect { return s.frame }

func (s *Surface) SetTitle(title string) { s.title = title }

func (s *Surface) Title() string { return s.title }

// Frames lists every frame set through SetFrame.
func (s *Surface) Frames() []entity.Rect {
	return append([]entity.Rect(nil), s.frames...)
}
