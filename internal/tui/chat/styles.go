package chat

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary   = lipgloss.Color("#8B5CF6") // violet
	colorAccent    = lipgloss.Color("#F59E0B") // amber
	colorError     = lipgloss.Color("#EF4444") // red
	colorText      = lipgloss.Color("#F8FAFC") // slate 50
	colorTextMuted = lipgloss.Color("#94A3B8") // slate 400
	colorBgUser    = lipgloss.Color("#1E3A5F")
	colorBgAnswer  = lipgloss.Color("#1E293B") // slate 800
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	recordingStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgUser).
			Padding(0, 1)

	answerBubbleStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorBgAnswer).
				Padding(0, 1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Faint(true)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	micStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)
