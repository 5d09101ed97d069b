// ABOUTME: Status card widget for the dashboard overview
// ABOUTME: Titled panel with a classified badge and label/value rows

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/icons"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/state"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/styles"
)

// Field is one label/value row of a card
type Field struct {
	Label string
	Value string
}

// CardConfig holds configuration for a status card
type CardConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
}

// DefaultCardConfig returns sensible defaults
func DefaultCardConfig() CardConfig {
	return CardConfig{
		Width:       36,
		BorderColor: styles.Muted,
		TitleColor:  styles.Primary,
	}
}

// Card renders a status card: title line with badge, then one row per field
func Card(icon icons.Icon, title string, badge state.Badge, fields []Field, config CardConfig) string {
	if config.Width <= 0 {
		config.Width = DefaultCardConfig().Width
	}

	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor).Bold(true)

	lines := []string{
		fmt.Sprintf("%s %s  %s", icon.String(), titleStyle.Render(title), StatusText(badge)),
	}

	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}
	for _, f := range fields {
		label := f.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(f.Label))
		lines = append(lines, fmt.Sprintf("%s  %s", styles.LabelStyle.Render(label), truncate(f.Value, config.Width-labelWidth-6)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(config.BorderColor).
		Padding(0, 1).
		Width(config.Width).
		Render(strings.Join(lines, "\n"))
}

// truncate shortens a string to maxLen runes with ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
