package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Direction of a console line.
type Direction int

const (
	DirectionOut Direction = iota // native to page
	DirectionIn                   // page to native
	DirectionNote
	DirectionError
)

// ConsoleLine renders one line of the bridge console transcript.
func (t *Theme) ConsoleLine(dir Direction, tag, text string) string {
	var icon string
	var style lipgloss.Style
	switch dir {
	case DirectionIn:
		icon, style = IconArrowOut, t.SuccessStyle
	case DirectionOut:
		icon, style = IconArrowIn, t.Highlight
	case DirectionError:
		icon, style = IconX, t.ErrorStyle
	default:
		icon, style = IconInfo, t.Subtle
	}

	if tag == "" {
		return fmt.Sprintf("%s %s", style.Render(icon), t.Normal.Render(text))
	}
	return fmt.Sprintf("%s %s %s", style.Render(icon), t.MutedBadge(tag), t.Normal.Render(text))
}
