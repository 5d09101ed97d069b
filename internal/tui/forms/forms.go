// ABOUTME: Input forms for token, NewAPI and schedule edits as bubbletea models
// ABOUTME: Wraps huh forms; values are validated by the dashboard, not the form

package forms

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/styles"
)

// Kind identifies which form is open
type Kind int

const (
	KindToken Kind = iota
	KindNewAPI
	KindSchedule
)

func (k Kind) String() string {
	switch k {
	case KindToken:
		return "Login token"
	case KindNewAPI:
		return "NewAPI credentials"
	case KindSchedule:
		return "Daily schedule"
	default:
		return "Form"
	}
}

// Values carries the raw input of a submitted form
type Values struct {
	Token         string
	Authorization string
	UserID        string
	Enabled       bool
	Time          string
}

// SubmittedMsg is sent when a form is completed
type SubmittedMsg struct {
	Kind   Kind
	Values Values
}

// CancelledMsg is sent when a form is dismissed with esc
type CancelledMsg struct {
	Kind Kind
}

// Form is one open input form
type Form struct {
	kind   Kind
	form   *huh.Form
	values *Values
	secret []*huh.Input
	reveal bool
	width  int
}

// createTheme returns the huh theme matching the dashboard palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := styles.Primary
	accent := styles.Accent
	muted := styles.Muted
	text := styles.Text
	red := styles.Danger

	t.Group.Title = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(text)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(muted).
		Background(styles.Surface).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(muted)

	return t
}

func secretInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		EchoMode(huh.EchoModePassword).
		Value(value)
}

// NewToken opens the login token form, prefilled with a draft value
func NewToken(draft string) *Form {
	f := &Form{kind: KindToken, values: &Values{Token: draft}}
	token := secretInput("linux.do token", "paste the _t cookie value", &f.values.Token)
	f.secret = []*huh.Input{token}
	f.form = huh.NewForm(
		huh.NewGroup(token).
			Title("Set login token").
			Description("Enter to save, ctrl+t to show or hide, esc to cancel"),
	).WithTheme(createTheme()).WithShowHelp(false)
	return f
}

// NewNewAPI opens the NewAPI credentials form, prefilled with draft values
func NewNewAPI(authorization, userID string) *Form {
	f := &Form{kind: KindNewAPI, values: &Values{Authorization: authorization, UserID: userID}}
	auth := secretInput("Authorization", "sk-...", &f.values.Authorization)
	f.secret = []*huh.Input{auth}
	f.form = huh.NewForm(
		huh.NewGroup(
			auth,
			huh.NewInput().
				Title("User ID").
				Placeholder("numeric user id").
				CharLimit(20).
				Value(&f.values.UserID),
		).Title("Set NewAPI credentials").
			Description("Used to redeem lottery codes; ctrl+t to show or hide"),
	).WithTheme(createTheme()).WithShowHelp(false)
	return f
}

// NewSchedule opens the schedule form prefilled with the current config
func NewSchedule(enabled bool, at string) *Form {
	f := &Form{kind: KindSchedule, values: &Values{Enabled: enabled, Time: at}}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Daily check-in").
				Affirmative("Enabled").
				Negative("Disabled").
				Value(&f.values.Enabled),
			huh.NewInput().
				Title("Time").
				Description("24-hour HH:MM, server local time").
				Placeholder("08:30").
				CharLimit(5).
				Value(&f.values.Time),
		).Title("Configure schedule"),
	).WithTheme(createTheme()).WithShowHelp(false)
	return f
}

// Kind returns which form this is
func (f *Form) Kind() Kind {
	return f.kind
}

// Revealed reports whether secret inputs are shown in clear text
func (f *Form) Revealed() bool {
	return f.reveal
}

// SetWidth sets the form width for proper rendering
func (f *Form) SetWidth(width int) {
	f.width = width
	f.form = f.form.WithWidth(width)
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			kind := f.kind
			return f, func() tea.Msg { return CancelledMsg{Kind: kind} }
		case "ctrl+t":
			f.toggleReveal()
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	switch f.form.State {
	case huh.StateCompleted:
		submitted := SubmittedMsg{Kind: f.kind, Values: *f.values}
		return f, func() tea.Msg { return submitted }
	case huh.StateAborted:
		kind := f.kind
		return f, func() tea.Msg { return CancelledMsg{Kind: kind} }
	}

	return f, cmd
}

func (f *Form) toggleReveal() {
	f.reveal = !f.reveal
	mode := huh.EchoModePassword
	if f.reveal {
		mode = huh.EchoModeNormal
	}
	for _, in := range f.secret {
		in.EchoMode(mode)
	}
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder
	sb.WriteString(f.form.View())
	if len(f.secret) > 0 {
		hint := "hidden"
		if f.reveal {
			hint = "visible"
		}
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("secret input " + hint))
	}
	return sb.String()
}
