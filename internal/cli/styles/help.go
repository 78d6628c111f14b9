package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// ConsoleKeyMap defines keybindings for the bridge console.
type ConsoleKeyMap struct {
	Send  key.Binding
	Clear key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultConsoleKeyMap returns the default console keybindings.
func DefaultConsoleKeyMap() ConsoleKeyMap {
	return ConsoleKeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns keybindings to show in compact help.
func (k ConsoleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Clear, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k ConsoleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Send, k.Clear}, {k.Help, k.Quit}}
}

// NewHelp creates a themed help model.
func NewHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = theme.HelpDesc
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
