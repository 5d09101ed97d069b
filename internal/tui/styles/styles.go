// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines the palette, panels, frame and toast styles of the dashboard

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#E5E7EB") // Light

	// Colors - Extended palette
	Accent  = lipgloss.Color("#8B5CF6") // Lighter purple for highlights
	Surface = lipgloss.Color("#374151") // Elevated surface background
	Info    = lipgloss.Color("#3B82F6") // Blue - informational

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help is muted text for hints, placeholders and empty states
	Help = lipgloss.NewStyle().
		Foreground(Muted)

	// Frame styles for the header and footer rules
	FrameBorder  = lipgloss.NewStyle().Foreground(Muted)
	FrameTitle   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	FrameContext = lipgloss.NewStyle().Foreground(Secondary)

	// Key style for keyboard shortcuts
	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Disabled is used for nav hints and actions that cannot fire
	Disabled = lipgloss.NewStyle().
			Foreground(Surface)

	// Label style for card field names
	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Toast boxes, one per severity
	toastBase = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	ToastSuccess = toastBase.BorderForeground(Secondary).Foreground(Secondary)
	ToastError   = toastBase.BorderForeground(Danger).Foreground(Danger)
	ToastWarning = toastBase.BorderForeground(Warning).Foreground(Warning)
	ToastInfo    = toastBase.BorderForeground(Info).Foreground(Info)
)
