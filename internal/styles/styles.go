package styles

import "github.com/charmbracelet/lipgloss"

// Color variables, set by ApplyThemeColors.
var (
	Primary lipgloss.Color
	Accent  lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	BgPrimary   lipgloss.Color
	BgSecondary lipgloss.Color
	BgTertiary  lipgloss.Color

	BorderNormal lipgloss.Color

	CurrentMarkdownTheme string
)

// Styles, rebuilt whenever the theme changes.
var (
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	KeyHint  lipgloss.Style

	// Line count badges by severity
	BadgeNormal  lipgloss.Style
	BadgeWarning lipgloss.Style
	BadgeError   lipgloss.Style

	StatusBar  lipgloss.Style
	ErrorText  lipgloss.Style
	PanelFrame lipgloss.Style
)

func init() {
	ApplyThemeColors(DefaultTheme)
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Selected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary).
		Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	BadgeNormal = lipgloss.NewStyle().
		Foreground(TextSecondary)

	BadgeWarning = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	BadgeError = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgSecondary).
		Padding(0, 1)

	ErrorText = lipgloss.NewStyle().
		Foreground(Error)

	PanelFrame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)
}
