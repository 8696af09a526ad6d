package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#A78BFA") // Light purple
	colorSuccess   = lipgloss.Color("#10B981") // Green
	colorDanger    = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
)

// Shared styles used by the CLI output.
var (
	// Table header row.
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Skill and agent names in tables.
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// Confirmation dialog.
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	dialogButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(colorMuted).
				Padding(0, 2)

	dialogActiveButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(colorPrimary).
				Padding(0, 2).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Success renders a success line, e.g. the install summary.
func Success(s string) string { return successStyle.Render(s) }

// Error renders an error line.
func Error(s string) string { return errorStyle.Render(s) }

// Warning renders a warning line.
func Warning(s string) string { return warningStyle.Render(s) }

// Muted renders secondary text such as paths and hints.
func Muted(s string) string { return mutedStyle.Render(s) }
