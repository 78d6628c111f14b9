// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/plugview/internal/cli"
	"github.com/bnema/plugview/internal/cli/styles"
)

const maxTranscriptLines = 500

// ConsoleSession is the view side of the console.
type ConsoleSession interface {
	Execute(cmd cli.Command)
	Events() <-chan cli.ConsoleEvent
}

// ConsoleModel is the Bubble Tea model of the interactive bridge console.
type ConsoleModel struct {
	// UI components
	input textinput.Model
	help  help.Model
	keys  styles.ConsoleKeyMap

	// State
	lines    []string
	title    string
	showHelp bool
	width    int
	height   int

	// Dependencies
	session ConsoleSession
	theme   *styles.Theme
}

// NewConsoleModel creates a console bound to session.
func NewConsoleModel(theme *styles.Theme, session ConsoleSession, title string) ConsoleModel {
	input := styles.NewConsoleInput(theme)
	input.Focus()

	return ConsoleModel{
		input:   input,
		help:    styles.NewHelp(theme),
		keys:    styles.DefaultConsoleKeyMap(),
		title:   title,
		session: session,
		theme:   theme,
		width:   80,
		height:  24,
	}
}

// consoleEventMsg carries one page event into the model.
type consoleEventMsg cli.ConsoleEvent

// consoleClosedMsg is sent once the session stopped.
type consoleClosedMsg struct{}

func waitForEvent(events <-chan cli.ConsoleEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return consoleClosedMsg{}
		}
		return consoleEventMsg(ev)
	}
}

// Init implements tea.Model.
func (m ConsoleModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.session.Events()))
}

// Update implements tea.Model.
func (m ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 10)
		m.help.Width = msg.Width
		return m, nil

	case consoleEventMsg:
		m.appendLine(m.theme.ConsoleLine(msg.Dir, msg.Tag, msg.Text))
		return m, waitForEvent(m.session.Events())

	case consoleClosedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.lines = nil
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Send):
			m.submit()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ConsoleModel) submit() {
	line := m.input.Value()
	cmd, err := cli.ParseCommand(line)
	switch {
	case errors.Is(err, cli.ErrEmptyCommand):
		return
	case err != nil:
		m.appendLine(m.theme.ConsoleLine(styles.DirectionError, "", err.Error()))
	default:
		m.session.Execute(cmd)
	}
	m.input.Reset()
}

func (m *ConsoleModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	if over := len(m.lines) - maxTranscriptLines; over > 0 {
		m.lines = m.lines[over:]
	}
}

// Lines returns the rendered transcript.
func (m ConsoleModel) Lines() []string {
	return m.lines
}

// View implements tea.Model.
func (m ConsoleModel) View() string {
	t := m.theme

	header := t.BoxHeader.Render(t.Title.Render("plugview console") + " " + t.Subtle.Render(m.title))
	footer := lipgloss.JoinVertical(lipgloss.Left,
		t.InputBox(m.input.View(), true),
		m.help.View(m.keys),
	)

	room := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if room < 1 {
		room = 1
	}
	visible := m.lines
	if len(visible) > room {
		visible = visible[len(visible)-room:]
	}
	transcript := strings.Join(visible, "\n")
	if pad := room - len(visible); pad > 0 {
		transcript += strings.Repeat("\n", pad)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, transcript, footer)
}

// Ensure interface compliance.
var _ tea.Model = (*ConsoleModel)(nil)
