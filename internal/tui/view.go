// ABOUTME: Rendering for the dashboard: status cards, actions, log table and frame
// ABOUTME: View reads only from the view-state; nothing here mutates it

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/icons"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/state"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/styles"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/widgets"
)

const (
	colTime    = 19
	colStatus  = 9
	colTrigger = 10
)

func newLogTable() table.Model {
	t := table.New(
		table.WithColumns(logColumns(minTerminalWidth)),
		table.WithHeight(state.DefaultPageLimit+1),
		table.WithFocused(false),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

func logColumns(width int) []table.Column {
	msgWidth := width - panelPadding - colTime - colStatus - colTrigger - 8
	if msgWidth < 16 {
		msgWidth = 16
	}
	return []table.Column{
		{Title: "Time", Width: colTime},
		{Title: "Status", Width: colStatus},
		{Title: "Trigger", Width: colTrigger},
		{Title: "Message", Width: msgWidth},
	}
}

func logRows(entries []client.LogEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		status := "✕ failure"
		if e.Status == client.LogStatusSuccess {
			status = "✓ success"
		}
		message := e.Message
		if message == "" {
			message = state.EmptyMarker
		}
		at := e.Time
		rows = append(rows, table.Row{state.FormatTime(&at), status, e.Trigger, message})
	}
	return rows
}

func (a *App) resizeLogs() {
	a.logs.SetColumns(logColumns(a.frameWidth()))
	a.logs.SetWidth(a.contentWidth())
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenForm:
		content = a.viewForm()
	default:
		content = a.viewDashboard()
	}
	return a.wrapWithFrame(content)
}

func (a *App) viewForm() string {
	if a.form == nil {
		return ""
	}
	title := styles.Title.Render(a.form.Kind().String())
	return styles.ActivePanel.Width(a.contentWidth()).Render(title + "\n" + a.form.View())
}

// viewDashboard renders overview cards, actions pane, logs and toasts
func (a *App) viewDashboard() string {
	cards := a.viewCards()
	actions := styles.Panel.Width(a.actionsWidth()).Render(a.viewActions())

	var top string
	if a.width < minTerminalWidth*3/2 {
		top = lipgloss.JoinVertical(lipgloss.Left, cards, actions)
	} else {
		top = lipgloss.JoinHorizontal(lipgloss.Top, cards, actions)
	}

	sections := []string{top, a.viewLogs()}
	if a.help.ShowAll {
		sections = append(sections, a.help.View(a.keys))
	}
	if t := a.toasts.View(); t != "" {
		sections = append(sections, lipgloss.PlaceHorizontal(a.contentWidth(), lipgloss.Right, t))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) cardConfig() widgets.CardConfig {
	cfg := widgets.DefaultCardConfig()
	if w := (a.cardsWidth() / 2) - 2; w > cfg.Width {
		cfg.Width = w
	}
	return cfg
}

func (a *App) viewCards() string {
	cfg := a.cardConfig()
	v := a.view

	var tokenFields, newapiFields []widgets.Field
	if ts := v.Token; ts != nil {
		tokenFields = []widgets.Field{
			{Label: "service token", Value: state.Masked(ts.BoheSignToken.Masked)},
			{Label: "login token", Value: state.Masked(ts.LinuxDoToken.Masked)},
			{Label: "connect token", Value: state.Masked(ts.LinuxDoConnectToken.Masked)},
		}
		newapiFields = []widgets.Field{
			{Label: "authorization", Value: state.Masked(ts.NewAPI.AuthorizationMasked)},
			{Label: "user id", Value: state.Masked(ts.NewAPI.UserID)},
		}
	} else {
		tokenFields = []widgets.Field{{Label: "service token", Value: state.NotSet}}
		newapiFields = []widgets.Field{{Label: "authorization", Value: state.NotSet}}
	}

	var signFields []widgets.Field
	if ss := v.Sign; ss != nil {
		signFields = []widgets.Field{
			{Label: "last sign", Value: state.FormatTime(ss.LastSignTime)},
			{Label: "streak", Value: state.FormatCount(ss.ContinuousDays)},
			{Label: "total", Value: state.FormatCount(ss.TotalSigns)},
		}
	} else {
		signFields = []widgets.Field{{Label: "last sign", Value: state.EmptyMarker}}
	}

	var scheduleFields []widgets.Field
	if sc := v.Schedule; sc != nil && sc.Enabled {
		scheduleFields = []widgets.Field{
			{Label: "next run", Value: state.FormatTime(sc.NextRun)},
			{Label: "last run", Value: state.FormatTime(sc.LastRun)},
		}
	} else {
		scheduleFields = []widgets.Field{{Label: "daily run", Value: "off"}}
	}

	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.Card(icons.Key, "Token", state.TokenBadge(v.Token), tokenFields, cfg),
		widgets.Card(icons.Plug, "NewAPI", state.NewAPIBadge(v.Token), newapiFields, cfg),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.Card(icons.Calendar, "Check-in", state.SignBadge(v.Sign), signFields, cfg),
		widgets.Card(icons.Clock, "Schedule", state.ScheduleBadge(v.Schedule), scheduleFields, cfg),
	)
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

// viewActions lists write actions; pending ones show the spinner
func (a *App) viewActions() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Sign.String() + " Actions"))
	sb.WriteString("\n")

	for _, action := range actionOrder {
		if !action.mutating() {
			continue
		}
		b := a.keys[action]
		label := actionSpecs[action].label
		if a.pending[action] {
			sb.WriteString(fmt.Sprintf("%s %s\n", a.spinner.View(), styles.Disabled.Render(label+"...")))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", styles.KeyStyle.Render(b.Help().Key), label))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// viewLogs renders the log table with its page indicator
func (a *App) viewLogs() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.History.String() + " Sign history"))
	sb.WriteString("\n")

	if msg := a.view.LogsMessage(); msg != "" {
		sb.WriteString(styles.Help.Render(msg))
	} else if a.view.Logs.Loaded {
		sb.WriteString(a.logs.View())
	} else {
		sb.WriteString(styles.Help.Render("Loading..."))
	}
	sb.WriteString("\n\n")
	sb.WriteString(a.viewPager())

	return styles.Panel.Width(a.contentWidth()).Render(sb.String())
}

func (a *App) viewPager() string {
	p := a.view.Page
	prev := styles.KeyStyle.Render(icons.Back.String() + " prev")
	if !p.CanPrev() {
		prev = styles.Disabled.Render(icons.Back.String() + " prev")
	}
	next := styles.KeyStyle.Render("next " + icons.Next.String())
	if !p.CanNext() {
		next = styles.Disabled.Render("next " + icons.Next.String())
	}
	return fmt.Sprintf("%s   %s   %s", prev, p.Label(), next)
}

// frameWidth is the width of header and footer lines
func (a *App) frameWidth() int {
	width := a.width - 1
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width
}

// contentWidth is the inner width available to panels
func (a *App) contentWidth() int {
	return a.frameWidth() - panelPadding
}

func (a *App) cardsWidth() int {
	if a.width < minTerminalWidth*3/2 {
		return a.contentWidth()
	}
	return a.contentWidth() * 2 / 3
}

func (a *App) actionsWidth() int {
	if a.width < minTerminalWidth*3/2 {
		return a.contentWidth()
	}
	return a.contentWidth() - a.cardsWidth() - panelPadding
}

// renderHeader creates the header bar with app branding and backend URL
func (a *App) renderHeader() string {
	width := a.frameWidth()

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), styles.FrameTitle.Render("Bohe Sign"))

	rightText := ""
	if a.backend != nil {
		rightText = " " + styles.FrameContext.Render(a.backend.BaseURL()) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText) // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	return styles.FrameBorder.Render("╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	var shortcuts [][2]string
	switch a.screen {
	case ScreenForm:
		shortcuts = [][2]string{{"Enter", "Save"}, {"Tab", "Next field"}, {"ctrl+t", "Reveal"}, {"Esc", "Cancel"}}
	default:
		for _, b := range a.keys.ShortHelp() {
			shortcuts = append(shortcuts, [2]string{b.Help().Key, b.Help().Desc})
		}
	}

	var styled []string
	for _, s := range shortcuts {
		styled = append(styled, styles.KeyStyle.Render(s[0])+" "+styles.Help.Render(s[1]))
	}
	leftText := " " + strings.Join(styled, "  ") + " "

	rightText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenDashboard {
		rightText = " " + styles.FrameContext.Render("Updated "+formatTimeSince(a.lastUpdate)) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText) // -4 for ╰─ and ─╯
	if fillWidth < 0 && rightText != "" {
		fillWidth += lipgloss.Width(rightText)
		rightText = ""
	}
	if fillWidth < 0 {
		fillWidth = 0
	}

	return styles.FrameBorder.Render("╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}
