package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/plugview/internal/cli/styles"
	"github.com/bnema/plugview/internal/infrastructure/config"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr string
	}{
		{line: "hello world", want: Command{Kind: CommandSend, Text: "hello world"}},
		{line: ":send :literal", want: Command{Kind: CommandSend, Text: ":literal"}},
		{line: ":js document.title", want: Command{Kind: CommandEval, Text: "document.title"}},
		{line: ":resize 800 600", want: Command{Kind: CommandResize, Width: 800, Height: 600}},
		{line: ":reload", want: Command{Kind: CommandReload}},
		{line: ":js", wantErr: "needs a script"},
		{line: ":resize 800", wantErr: "width and height"},
		{line: ":resize -1 5", wantErr: "non-negative"},
		{line: ":nope", wantErr: "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCommand("  ")
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func waitForConsoleEvent(t *testing.T, events <-chan ConsoleEvent, match func(ConsoleEvent) bool) ConsoleEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "events closed before match")
			if match(ev) {
				return ev
			}
		case <-timeout:
			t.Fatal("timed out waiting for console event")
		}
	}
}

func TestConsoleSessionRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, err := NewConsoleSession(ctx, ConsoleParams{
		Config:     config.DefaultConfig(),
		UserScript: `window.juceBridgeOnMessage = function (m) { juceBridge.postMessage('echo:' + m); };`,
		LogLevel:   zerolog.InfoLevel,
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	waitForConsoleEvent(t, session.Events(), func(ev ConsoleEvent) bool {
		return ev.Dir == styles.DirectionNote && ev.Text == "page loaded"
	})

	session.Execute(Command{Kind: CommandSend, Text: "ping \"quoted\""})
	ev := waitForConsoleEvent(t, session.Events(), func(ev ConsoleEvent) bool {
		return ev.Dir == styles.DirectionIn
	})
	assert.Equal(t, "message", ev.Tag)
	assert.Equal(t, `echo:ping "quoted"`, ev.Text)

	session.Execute(Command{Kind: CommandEval, Text: `juceBridge.resizeTo(640, 480);`})
	ev = waitForConsoleEvent(t, session.Events(), func(ev ConsoleEvent) bool {
		return ev.Tag == "resize"
	})
	assert.Equal(t, "640x480", ev.Text)

	session.Execute(Command{Kind: CommandEval, Text: `console.warn('careful');`})
	waitForConsoleEvent(t, session.Events(), func(ev ConsoleEvent) bool {
		return ev.Tag == "log" && strings.Contains(ev.Text, "careful")
	})

	cancel()
	require.NoError(t, <-done)

	_, open := <-session.Events()
	for open {
		_, open = <-session.Events()
	}
}
