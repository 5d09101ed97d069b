// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Renders the icon and text of a classified badge in its color

package widgets

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/state"
)

// Badge colors
var (
	BadgeOK   = lipgloss.Color("#10B981")
	BadgeWarn = lipgloss.Color("#F59E0B")
	BadgeCrit = lipgloss.Color("#EF4444")
	BadgeInfo = lipgloss.Color("#3B82F6")
)

func badgeColor(style state.Style) lipgloss.Color {
	switch style {
	case state.StyleSuccess:
		return BadgeOK
	case state.StyleWarning:
		return BadgeWarn
	case state.StyleError:
		return BadgeCrit
	default:
		return BadgeInfo
	}
}

// StatusText returns styled badge text with the icon chosen by the classifier
func StatusText(b state.Badge) string {
	style := lipgloss.NewStyle().Foreground(badgeColor(b.Style))
	return fmt.Sprintf("%s %s", style.Render(b.Icon.String()), style.Render(b.Text))
}
