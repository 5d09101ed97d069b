// ABOUTME: Declarative key bindings for every dashboard action
// ABOUTME: One table drives both key dispatch and the footer help

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a user-triggerable dashboard operation
type Action int

const (
	ActionSetToken Action = iota
	ActionRefreshToken
	ActionSetNewAPI
	ActionSignNow
	ActionEditSchedule
	ActionDeleteSchedule
	ActionPrevPage
	ActionNextPage
	ActionReload
	ActionHelp
	ActionQuit
)

// mutating reports whether the action issues a write request
func (a Action) mutating() bool {
	switch a {
	case ActionSetToken, ActionRefreshToken, ActionSetNewAPI, ActionSignNow, ActionEditSchedule, ActionDeleteSchedule:
		return true
	default:
		return false
	}
}

// actionOrder fixes the order actions are matched and listed in
var actionOrder = []Action{
	ActionSetToken,
	ActionRefreshToken,
	ActionSetNewAPI,
	ActionSignNow,
	ActionEditSchedule,
	ActionDeleteSchedule,
	ActionPrevPage,
	ActionNextPage,
	ActionReload,
	ActionHelp,
	ActionQuit,
}

// keyMap binds actions to keys
type keyMap map[Action]key.Binding

func defaultKeyMap() keyMap {
	return keyMap{
		ActionSetToken:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "set token")),
		ActionRefreshToken:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "refresh token")),
		ActionSetNewAPI:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "newapi")),
		ActionSignNow:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign now")),
		ActionEditSchedule:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "schedule")),
		ActionDeleteSchedule: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete schedule")),
		ActionPrevPage:       key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←", "prev page")),
		ActionNextPage:       key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→", "next page")),
		ActionReload:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		ActionHelp:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		ActionQuit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// lookup returns the action bound to a key press
func (k keyMap) lookup(msg tea.KeyMsg) (Action, bool) {
	for _, a := range actionOrder {
		if key.Matches(msg, k[a]) {
			return a, true
		}
	}
	return 0, false
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k[ActionSignNow], k[ActionSetToken], k[ActionEditSchedule], k[ActionReload], k[ActionHelp], k[ActionQuit]}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k[ActionSetToken], k[ActionRefreshToken], k[ActionSetNewAPI]},
		{k[ActionSignNow], k[ActionEditSchedule], k[ActionDeleteSchedule]},
		{k[ActionPrevPage], k[ActionNextPage], k[ActionReload]},
		{k[ActionHelp], k[ActionQuit]},
	}
}
