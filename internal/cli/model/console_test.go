package model

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/plugview/internal/cli"
	"github.com/bnema/plugview/internal/cli/styles"
)

type fakeSession struct {
	executed []cli.Command
	events   chan cli.ConsoleEvent
}

func newFakeSession() *fakeSession {
	return &fakeSession{events: make(chan cli.ConsoleEvent, 4)}
}

func (f *fakeSession) Execute(cmd cli.Command) { f.executed = append(f.executed, cmd) }
func (f *fakeSession) Events() <-chan cli.ConsoleEvent { return f.events }

func typeLine(t *testing.T, m ConsoleModel, line string) ConsoleModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(ConsoleModel)
}

func TestConsoleModelSendsParsedCommands(t *testing.T) {
	session := newFakeSession()
	m := NewConsoleModel(styles.NewTheme(), session, "demo")

	m = typeLine(t, m, "hello")
	m = typeLine(t, m, ":resize 640 480")
	m = typeLine(t, m, "   ")

	require.Len(t, session.executed, 2)
	assert.Equal(t, cli.Command{Kind: cli.CommandSend, Text: "hello"}, session.executed[0])
	assert.Equal(t, cli.Command{Kind: cli.CommandResize, Width: 640, Height: 480}, session.executed[1])
	assert.Empty(t, m.input.Value())
}

func TestConsoleModelReportsParseErrors(t *testing.T) {
	session := newFakeSession()
	m := NewConsoleModel(styles.NewTheme(), session, "demo")

	m = typeLine(t, m, ":bogus")

	assert.Empty(t, session.executed)
	require.Len(t, m.Lines(), 1)
	assert.Contains(t, m.Lines()[0], "unknown command :bogus")
}

func TestConsoleModelAppendsEvents(t *testing.T) {
	session := newFakeSession()
	m := NewConsoleModel(styles.NewTheme(), session, "demo")

	next, cmd := m.Update(consoleEventMsg{Dir: styles.DirectionIn, Tag: "message", Text: "from page"})
	m = next.(ConsoleModel)
	require.NotNil(t, cmd, "keeps listening for events")
	assert.Contains(t, m.View(), "from page")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, next.(ConsoleModel).Lines())
}

func TestConsoleModelQuitsWhenSessionCloses(t *testing.T) {
	session := newFakeSession()
	close(session.events)
	m := NewConsoleModel(styles.NewTheme(), session, "demo")

	msg := waitForEvent(session.Events())()
	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestConsoleModelTrimsTranscript(t *testing.T) {
	m := NewConsoleModel(styles.NewTheme(), newFakeSession(), "demo")
	for i := 0; i < maxTranscriptLines+10; i++ {
		m.appendLine("line")
	}
	assert.Len(t, m.Lines(), maxTranscriptLines)
}
