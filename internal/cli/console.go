package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/plugview/internal/application/nativeview"
	"github.com/bnema/plugview/internal/cli/styles"
	"github.com/bnema/plugview/internal/domain/entity"
	"github.com/bnema/plugview/internal/infrastructure/config"
	"github.com/bnema/plugview/internal/infrastructure/headless"
	"github.com/bnema/plugview/internal/logging"
	"github.com/bnema/plugview/internal/ui/mainloop"
)

// ErrEmptyCommand is returned for a blank console line.
var ErrEmptyCommand = errors.New("empty command")

// ConsoleEvent is one line of the console transcript.
type ConsoleEvent struct {
	Dir  styles.Direction
	Tag  string
	Text string
}

// CommandKind identifies a console command.
type CommandKind int

const (
	CommandSend CommandKind = iota
	CommandEval
	CommandResize
	CommandReload
)

// Command is a parsed console line.
type Command struct {
	Kind   CommandKind
	Text   string
	Width  int
	Height int
}

// ParseCommand parses a console line. Lines starting with ':' are
// commands, anything else is sent to the page as a message.
func ParseCommand(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Command{}, ErrEmptyCommand
	}
	if !strings.HasPrefix(trimmed, ":") {
		return Command{Kind: CommandSend, Text: line}, nil
	}

	name, rest, _ := strings.Cut(trimmed[1:], " ")
	rest = strings.TrimSpace(rest)
	switch name {
	case "js":
		if rest == "" {
			return Command{}, fmt.Errorf(":js needs a script")
		}
		return Command{Kind: CommandEval, Text: rest}, nil
	case "resize":
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return Command{}, fmt.Errorf(":resize needs width and height")
		}
		w, errW := strconv.Atoi(fields[0])
		h, errH := strconv.Atoi(fields[1])
		if errW != nil || errH != nil || w < 0 || h < 0 {
			return Command{}, fmt.Errorf(":resize needs non-negative integers")
		}
		return Command{Kind: CommandResize, Width: w, Height: h}, nil
	case "reload":
		return Command{Kind: CommandReload}, nil
	case "send":
		return Command{Kind: CommandSend, Text: rest}, nil
	default:
		return Command{}, fmt.Errorf("unknown command :%s", name)
	}
}

// ConsoleSession is a headless view driven from the terminal. Events from
// the page are delivered on Events.
type ConsoleSession struct {
	loop   *mainloop.Loop
	view   *nativeview.NativeWebView
	events chan ConsoleEvent

	mu     sync.Mutex
	closed bool
}

// ConsoleParams configures a console session.
type ConsoleParams struct {
	Config     *config.Config
	URL        string
	UserScript string
	LogLevel   zerolog.Level
}

// NewConsoleSession builds the view. Call Run to start its UI loop.
func NewConsoleSession(ctx context.Context, p ConsoleParams) (*ConsoleSession, error) {
	s := &ConsoleSession{
		loop:   mainloop.New(),
		events: make(chan ConsoleEvent, 256),
	}

	// Page console output and view logs land in the transcript instead
	// of the terminal the TUI draws on.
	logger := logging.New(logging.Config{
		Level:  p.LogLevel,
		Format: "console",
		Output: &eventWriter{emit: s.emit},
	})
	ctx = logging.WithContext(ctx, logger)

	pageURL := p.URL
	if pageURL == "" {
		pageURL = p.Config.WebView.URL
	}
	if pageURL == "" {
		pageURL = "data:text/html,<!doctype html><title>plugview console</title>"
	}

	cfg := nativeview.WebViewConfiguration{
		URL:            pageURL,
		Size:           p.Config.WebView.Size(),
		UserScript:     p.UserScript,
		ForwardConsole: true,
		OnLoad: func(nativeview.ExecuteJavascript) {
			s.emit(ConsoleEvent{Dir: styles.DirectionNote, Text: "page loaded"})
		},
		OnMessageReceived: func(message string) {
			s.emit(ConsoleEvent{Dir: styles.DirectionIn, Tag: "message", Text: message})
		},
	}

	view, err := nativeview.New(ctx, cfg, headless.NewFactory(),
		nativeview.WithPost(s.loop.Post),
		nativeview.WithResizeHandler(s.resize),
	)
	if err != nil {
		return nil, err
	}
	s.view = view

	if err := view.AttachToParent(headless.NewSurface("console", cfg.Size)); err != nil {
		_ = view.Destroy()
		return nil, err
	}
	return s, nil
}

// Events delivers page events. It is closed once Run returns.
func (s *ConsoleSession) Events() <-chan ConsoleEvent {
	return s.events
}

// Run drives the UI loop until ctx is done, then destroys the view.
func (s *ConsoleSession) Run(ctx context.Context) error {
	err := s.loop.Run(ctx)

	if destroyErr := s.view.Destroy(); destroyErr != nil {
		s.emit(ConsoleEvent{Dir: styles.DirectionError, Text: destroyErr.Error()})
	}
	s.loop.Quit()
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.events)
	}
	s.mu.Unlock()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Execute queues cmd on the UI loop.
func (s *ConsoleSession) Execute(cmd Command) {
	s.loop.Post(func() {
		var err error
		switch cmd.Kind {
		case CommandSend:
			s.emit(ConsoleEvent{Dir: styles.DirectionOut, Tag: "message", Text: cmd.Text})
			err = s.view.SendMessage(cmd.Text)
		case CommandEval:
			s.emit(ConsoleEvent{Dir: styles.DirectionOut, Tag: "js", Text: cmd.Text})
			err = s.view.EvaluateJavascript(cmd.Text)
		case CommandResize:
			s.view.SetBounds(entity.NewRect(cmd.Width, cmd.Height))
			s.emit(ConsoleEvent{Dir: styles.DirectionNote, Text: "bounds " + s.view.Bounds().String()})
		case CommandReload:
			err = s.view.Reload()
		}
		if err != nil {
			s.emit(ConsoleEvent{Dir: styles.DirectionError, Text: err.Error()})
		}
	})
}

func (s *ConsoleSession) resize(w, h int) {
	s.emit(ConsoleEvent{Dir: styles.DirectionIn, Tag: "resize", Text: fmt.Sprintf("%dx%d", w, h)})
	s.view.SetBounds(entity.NewRect(w, h))
}

// emit never blocks the UI loop; a full transcript drops events.
func (s *ConsoleSession) emit(ev ConsoleEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}

type eventWriter struct {
	emit func(ConsoleEvent)
}

func (w *eventWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.emit(ConsoleEvent{Dir: styles.DirectionNote, Tag: "log", Text: string(line)})
	}
	return len(p), nil
}
