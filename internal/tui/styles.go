package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#3B82F6") // Blue
	colorSuccess   = lipgloss.Color("#22C55E") // Green
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorDanger    = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorBorder    = lipgloss.Color("#374151") // Dark gray
	colorSelected  = lipgloss.Color("#4F46E5") // Indigo
	colorContainer = lipgloss.Color("#0EA5E9") // Sky
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(colorPrimary).
			Padding(0, 1)

	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSecondary)

	tableSelectedStyle = lipgloss.NewStyle().
				Background(colorSelected).
				Foreground(lipgloss.Color("#FFFFFF"))

	portStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	containerStyle = lipgloss.NewStyle().
			Foreground(colorContainer)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	detailsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	detailsLabelStyle = lipgloss.NewStyle().
				Foreground(colorMuted)

	detailsValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1)

	statusDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	pausedStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)

	refreshingStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	filterPromptStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	filterInputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF"))
)
