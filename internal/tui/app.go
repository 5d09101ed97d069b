// ABOUTME: Root bubbletea model for the check-in dashboard
// ABOUTME: Owns the view-state, routes keys through the action table and polls status

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/debuglog"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/forms"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/state"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/styles"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/toast"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenForm
)

// DefaultRefreshInterval is how often the status views are polled
const DefaultRefreshInterval = 60 * time.Second

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// Options configures the dashboard
type Options struct {
	RefreshInterval time.Duration
	PageLimit       int
	ToastTTL        time.Duration
}

// App is the root model for the TUI
type App struct {
	backend         Backend
	screen          Screen
	width           int
	height          int
	refreshInterval time.Duration
	lastUpdate      time.Time

	view    state.ViewState
	pending map[Action]bool
	draft   forms.Values
	toasts  *toast.Stack

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	logs    table.Model
	form    *forms.Form
}

// New creates a new dashboard bound to a backend
func New(backend Backend, opts Options) *App {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	return &App{
		backend:         backend,
		screen:          ScreenDashboard,
		refreshInterval: opts.RefreshInterval,
		view:            state.New(opts.PageLimit),
		pending:         make(map[Action]bool),
		toasts:          toast.NewStack(opts.ToastTTL),
		keys:            defaultKeyMap(),
		help:            help.New(),
		spinner:         sp,
		logs:            newLogTable(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.fetchAll(), a.pollTick())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.resizeLogs()
		if a.form != nil {
			a.form.SetWidth(a.contentWidth())
			return a.updateForm(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.screen == ScreenForm {
			return a.updateForm(msg)
		}
		return a.handleKey(msg)

	case tokenLoadedMsg:
		a.view = a.view.WithToken(msg.status, msg.result)
		a.noteFetch("token status", msg.result.Success, msg.result.Message)
		return a, nil

	case signLoadedMsg:
		a.view = a.view.WithSign(msg.status, msg.result)
		a.noteFetch("sign status", msg.result.Success, msg.result.Message)
		return a, nil

	case scheduleLoadedMsg:
		a.view = a.view.WithSchedule(msg.config, msg.result)
		a.noteFetch("schedule", msg.result.Success, msg.result.Message)
		return a, nil

	case logsLoadedMsg:
		a.view = a.view.WithLogs(msg.page, msg.result)
		a.logs.SetRows(logRows(a.view.Logs.Entries))
		a.noteFetch("sign logs", msg.result.Success, msg.result.Message)
		return a, nil

	case pollTickMsg:
		return a, tea.Batch(a.fetchStatuses(), a.pollTick())

	case actionDoneMsg:
		return a, a.finishAction(msg)

	case toast.ExpiredMsg:
		a.toasts.Dismiss(msg.ID)
		return a, nil

	case spinner.TickMsg:
		if len(a.pending) == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case forms.SubmittedMsg:
		a.closeForm()
		return a, a.submitForm(msg)

	case forms.CancelledMsg:
		a.closeForm()
		return a, nil

	default:
		// huh forms drive themselves with internal messages
		if a.screen == ScreenForm && a.form != nil {
			return a.updateForm(msg)
		}
	}

	return a, nil
}

// handleKey resolves a key press through the action table
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, ok := a.keys.lookup(msg)
	if !ok {
		return a, nil
	}
	if action.mutating() && a.pending[action] {
		return a, nil
	}
	handler, ok := dispatch[action]
	if !ok {
		return a, nil
	}
	return a, handler(a)
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		return a, nil
	}
	model, cmd := a.form.Update(msg)
	a.form = model.(*forms.Form)
	return a, cmd
}

func (a *App) openForm(f *forms.Form) tea.Cmd {
	a.form = f
	a.form.SetWidth(a.contentWidth())
	a.screen = ScreenForm
	return a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.screen = ScreenDashboard
}

func (a *App) noteFetch(what string, ok bool, message string) {
	if !ok {
		debuglog.Warn("%s fetch failed: %s", what, message)
		return
	}
	a.lastUpdate = time.Now()
}

// Pending reports whether an action is waiting for its response
func (a *App) Pending(action Action) bool {
	return a.pending[action]
}

// State returns the current view-state
func (a *App) State() state.ViewState {
	return a.view
}

// Run starts the TUI
func Run(backend Backend, opts Options) error {
	p := tea.NewProgram(
		New(backend, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
