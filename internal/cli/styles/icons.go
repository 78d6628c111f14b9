package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGithub    = "" // github
	IconHeart     = "" // heart
	IconGo        = "" // go gopher

	IconCheck    = ""
	IconX        = ""
	IconInfo     = ""
	IconConfig   = ""
	IconArrowIn  = "" // arrow right
	IconArrowOut = "" // arrow left
	IconWindow   = ""
)
