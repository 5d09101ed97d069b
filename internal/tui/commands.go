// ABOUTME: Fetch and write commands issued by the dashboard
// ABOUTME: Every network call runs in a tea.Cmd and reports back as a message

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/debuglog"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/forms"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/state"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/toast"
)

// Backend is the check-in API as seen by the dashboard
type Backend interface {
	BaseURL() string
	TokenStatus(ctx context.Context) (*client.TokenStatus, client.Result)
	SignStatus(ctx context.Context) (*client.SignStatus, client.Result)
	Schedule(ctx context.Context) (*client.ScheduleConfig, client.Result)
	SignLogs(ctx context.Context, page, limit int) (*client.LogPage, client.Result)
	SetToken(ctx context.Context, token string) client.Result
	RefreshToken(ctx context.Context) client.Result
	SetNewAPI(ctx context.Context, authorization, userID string) client.Result
	SignNow(ctx context.Context) client.Result
	SaveSchedule(ctx context.Context, enabled bool, at string) client.Result
	DeleteSchedule(ctx context.Context) client.Result
}

type tokenLoadedMsg struct {
	status *client.TokenStatus
	result client.Result
}

type signLoadedMsg struct {
	status *client.SignStatus
	result client.Result
}

type scheduleLoadedMsg struct {
	config *client.ScheduleConfig
	result client.Result
}

type logsLoadedMsg struct {
	page   *client.LogPage
	result client.Result
}

// actionDoneMsg reports the outcome of one write request
type actionDoneMsg struct {
	action Action
	result client.Result
}

type pollTickMsg struct{}

func (a *App) fetchToken() tea.Cmd {
	b := a.backend
	return func() tea.Msg {
		ts, r := b.TokenStatus(context.Background())
		return tokenLoadedMsg{status: ts, result: r}
	}
}

func (a *App) fetchSign() tea.Cmd {
	b := a.backend
	return func() tea.Msg {
		ss, r := b.SignStatus(context.Background())
		return signLoadedMsg{status: ss, result: r}
	}
}

func (a *App) fetchSchedule() tea.Cmd {
	b := a.backend
	return func() tea.Msg {
		sc, r := b.Schedule(context.Background())
		return scheduleLoadedMsg{config: sc, result: r}
	}
}

func (a *App) fetchLogs() tea.Cmd {
	b := a.backend
	page, limit := a.view.Page.Page, a.view.Page.Limit
	return func() tea.Msg {
		lp, r := b.SignLogs(context.Background(), page, limit)
		return logsLoadedMsg{page: lp, result: r}
	}
}

// fetchAll loads the three status views and the current log page
func (a *App) fetchAll() tea.Cmd {
	return tea.Batch(a.fetchToken(), a.fetchSign(), a.fetchSchedule(), a.fetchLogs())
}

// fetchStatuses is the background poll; the log list is left alone
func (a *App) fetchStatuses() tea.Cmd {
	return tea.Batch(a.fetchToken(), a.fetchSign(), a.fetchSchedule())
}

func (a *App) pollTick() tea.Cmd {
	return tea.Tick(a.refreshInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// actionSpec describes the feedback and follow-up of a write action
type actionSpec struct {
	label   string
	success string
	failure string
	refetch func(*App) tea.Cmd
}

var actionSpecs = map[Action]actionSpec{
	ActionSetToken: {
		label: "Set login token", success: "token saved", failure: "failed to save token",
		refetch: (*App).fetchToken,
	},
	ActionRefreshToken: {
		label: "Refresh service token", success: "token refreshed", failure: "failed to refresh token",
		refetch: (*App).fetchToken,
	},
	ActionSetNewAPI: {
		label: "Set NewAPI credentials", success: "NewAPI settings saved", failure: "failed to save NewAPI settings",
		refetch: (*App).fetchToken,
	},
	ActionSignNow: {
		label: "Sign now", success: "sign succeeded", failure: "sign failed",
		refetch: func(a *App) tea.Cmd { return tea.Batch(a.fetchSign(), a.fetchLogs()) },
	},
	ActionEditSchedule: {
		label: "Configure schedule", success: "schedule saved", failure: "failed to save schedule",
		refetch: (*App).fetchSchedule,
	},
	ActionDeleteSchedule: {
		label: "Delete schedule", success: "schedule deleted", failure: "failed to delete schedule",
		refetch: (*App).fetchSchedule,
	},
}

// dispatch maps each action to its handler
var dispatch = map[Action]func(*App) tea.Cmd{
	ActionSetToken:       (*App).openTokenForm,
	ActionRefreshToken:   (*App).refreshToken,
	ActionSetNewAPI:      (*App).openNewAPIForm,
	ActionSignNow:        (*App).signNow,
	ActionEditSchedule:   (*App).openScheduleForm,
	ActionDeleteSchedule: (*App).deleteSchedule,
	ActionPrevPage:       (*App).prevPage,
	ActionNextPage:       (*App).nextPage,
	ActionReload:         (*App).fetchAll,
	ActionHelp:           (*App).toggleHelp,
	ActionQuit:           func(*App) tea.Cmd { return tea.Quit },
}

// perform marks the action pending and issues its single write request
func (a *App) perform(action Action, call func(ctx context.Context, b Backend) client.Result) tea.Cmd {
	first := len(a.pending) == 0
	a.pending[action] = true
	b := a.backend
	write := func() tea.Msg {
		return actionDoneMsg{action: action, result: call(context.Background(), b)}
	}
	if first {
		return tea.Batch(write, a.spinner.Tick)
	}
	return write
}

// warn shows a validation problem without touching the network
func (a *App) warn(err error) tea.Cmd {
	return a.toasts.Push(toast.Warning, err.Error())
}

func (a *App) refreshToken() tea.Cmd {
	return a.perform(ActionRefreshToken, func(ctx context.Context, b Backend) client.Result {
		return b.RefreshToken(ctx)
	})
}

func (a *App) signNow() tea.Cmd {
	return a.perform(ActionSignNow, func(ctx context.Context, b Backend) client.Result {
		return b.SignNow(ctx)
	})
}

func (a *App) deleteSchedule() tea.Cmd {
	return a.perform(ActionDeleteSchedule, func(ctx context.Context, b Backend) client.Result {
		return b.DeleteSchedule(ctx)
	})
}

func (a *App) openTokenForm() tea.Cmd {
	return a.openForm(forms.NewToken(a.draft.Token))
}

func (a *App) openNewAPIForm() tea.Cmd {
	return a.openForm(forms.NewNewAPI(a.draft.Authorization, a.draft.UserID))
}

func (a *App) openScheduleForm() tea.Cmd {
	enabled, at := false, ""
	if sc := a.view.Schedule; sc != nil {
		enabled, at = sc.Enabled, sc.Time
	}
	return a.openForm(forms.NewSchedule(enabled, at))
}

// submitForm validates submitted values and issues the matching write
func (a *App) submitForm(msg forms.SubmittedMsg) tea.Cmd {
	v := msg.Values
	switch msg.Kind {
	case forms.KindToken:
		a.draft.Token = v.Token
		token, err := state.ValidateToken(v.Token)
		if err != nil {
			return a.warn(err)
		}
		return a.perform(ActionSetToken, func(ctx context.Context, b Backend) client.Result {
			return b.SetToken(ctx, token)
		})

	case forms.KindNewAPI:
		a.draft.Authorization, a.draft.UserID = v.Authorization, v.UserID
		auth, userID, err := state.ValidateNewAPI(v.Authorization, v.UserID)
		if err != nil {
			return a.warn(err)
		}
		return a.perform(ActionSetNewAPI, func(ctx context.Context, b Backend) client.Result {
			return b.SetNewAPI(ctx, auth, userID)
		})

	case forms.KindSchedule:
		at, err := state.ValidateSchedule(v.Enabled, v.Time)
		if err != nil {
			return a.warn(err)
		}
		enabled := v.Enabled
		return a.perform(ActionEditSchedule, func(ctx context.Context, b Backend) client.Result {
			return b.SaveSchedule(ctx, enabled, at)
		})
	}
	return nil
}

// finishAction clears the pending flag and reports the outcome
func (a *App) finishAction(msg actionDoneMsg) tea.Cmd {
	delete(a.pending, msg.action)
	spec := actionSpecs[msg.action]

	if !msg.result.Success {
		debuglog.Warn("%s failed: %s", spec.label, msg.result.Message)
		return a.toasts.Push(toast.Error, msg.result.MessageOr(spec.failure))
	}

	switch msg.action {
	case ActionSetToken:
		a.draft.Token = ""
	case ActionSetNewAPI:
		a.draft.Authorization, a.draft.UserID = "", ""
	}
	return tea.Batch(a.toasts.Push(toast.Success, msg.result.MessageOr(spec.success)), spec.refetch(a))
}

func (a *App) prevPage() tea.Cmd {
	p, moved := a.view.Page.Prev()
	if !moved {
		return nil
	}
	a.view.Page = p
	return a.fetchLogs()
}

func (a *App) nextPage() tea.Cmd {
	p, moved := a.view.Page.Next()
	if !moved {
		return nil
	}
	a.view.Page = p
	return a.fetchLogs()
}

func (a *App) toggleHelp() tea.Cmd {
	a.help.ShowAll = !a.help.ShowAll
	return nil
}
