// ABOUTME: Stacked notification toasts with independent auto-dismiss timers
// ABOUTME: Each pushed toast schedules its own expiry message

package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/styles"
)

// DefaultTTL is how long a toast stays on screen
const DefaultTTL = 3 * time.Second

// Severity of a toast
type Severity int

const (
	Success Severity = iota
	Error
	Warning
	Info
)

// Toast is one notification
type Toast struct {
	ID       int
	Severity Severity
	Message  string
}

// ExpiredMsg removes the toast with the given ID
type ExpiredMsg struct {
	ID int
}

// Stack holds visible toasts, oldest first
type Stack struct {
	items  []Toast
	nextID int
	ttl    time.Duration
}

// NewStack returns an empty stack with the given lifetime per toast
func NewStack(ttl time.Duration) *Stack {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Stack{ttl: ttl}
}

// Push adds a toast and returns the command that expires it
func (s *Stack) Push(sev Severity, message string) tea.Cmd {
	s.nextID++
	id := s.nextID
	s.items = append(s.items, Toast{ID: id, Severity: sev, Message: message})
	return tea.Tick(s.ttl, func(time.Time) tea.Msg {
		return ExpiredMsg{ID: id}
	})
}

// Dismiss removes the toast with the given ID, if still present
func (s *Stack) Dismiss(id int) {
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Items returns the visible toasts, oldest first
func (s *Stack) Items() []Toast {
	return s.items
}

// Len returns the number of visible toasts
func (s *Stack) Len() int {
	return len(s.items)
}

func style(sev Severity) lipgloss.Style {
	switch sev {
	case Success:
		return styles.ToastSuccess
	case Error:
		return styles.ToastError
	case Warning:
		return styles.ToastWarning
	default:
		return styles.ToastInfo
	}
}

// View renders the stack, newest last
func (s *Stack) View() string {
	if len(s.items) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(s.items))
	for _, t := range s.items {
		rendered = append(rendered, style(t.Severity).Render(t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}
