package styles

import "github.com/charmbracelet/lipgloss"

// Colors - a pleasant color palette
var (
	Primary = lipgloss.Color("#7C3AED") // Purple
	Accent  = lipgloss.Color("#F59E0B") // Amber

	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red

	Text      = lipgloss.Color("#F9FAFB") // White
	TextMuted = lipgloss.Color("#9CA3AF") // Gray
	TextDim   = lipgloss.Color("#6B7280") // Darker gray
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Link = lipgloss.NewStyle().
		Underline(true).
		Foreground(Accent)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	OK = lipgloss.NewStyle().
		Foreground(Success)

	Warn = lipgloss.NewStyle().
		Foreground(Warning)

	Bad = lipgloss.NewStyle().
		Bold(true).
		Foreground(Error)
)

// ModeBadge renders a button's strategy name.
func ModeBadge(mode string) string {
	if mode == "template" {
		return Highlight.Render(mode)
	}
	return Label.Render(mode)
}

// StatusIcon returns an icon for a pass/fail status
func StatusIcon(ok bool) string {
	if ok {
		return OK.Render("✓")
	}
	return Bad.Render("✗")
}
