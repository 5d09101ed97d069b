// ABOUTME: Dashboard view-state and the reducers that replace its slices
// ABOUTME: Successful fetches overwrite a slice wholesale; failures leave it untouched

package state

import (
	"strconv"
	"time"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
)

// NotSet is shown for absent masked values and missing timestamps
const (
	NotSet      = "not set"
	EmptyMarker = "-"
)

// Log list messages
const (
	NoRecords  = "no sign records"
	LoadFailed = "failed to load"
)

// LogsState is the log list slice of the view-state
type LogsState struct {
	Entries []client.LogEntry
	Failed  bool
	Loaded  bool
}

// ViewState holds everything the dashboard renders
type ViewState struct {
	Token    *client.TokenStatus
	Sign     *client.SignStatus
	Schedule *client.ScheduleConfig
	Logs     LogsState
	Page     Pagination
}

// New returns the empty view-state shown before the first fetch
func New(limit int) ViewState {
	return ViewState{Page: NewPagination(limit)}
}

// WithToken applies a token status fetch result
func (s ViewState) WithToken(ts *client.TokenStatus, r client.Result) ViewState {
	if r.Success && ts != nil {
		s.Token = ts
	}
	return s
}

// WithSign applies a sign status fetch result
func (s ViewState) WithSign(ss *client.SignStatus, r client.Result) ViewState {
	if r.Success && ss != nil {
		s.Sign = ss
	}
	return s
}

// WithSchedule applies a schedule fetch result
func (s ViewState) WithSchedule(sc *client.ScheduleConfig, r client.Result) ViewState {
	if r.Success && sc != nil {
		s.Schedule = sc
	}
	return s
}

// WithLogs applies a log page fetch result. A failure keeps the page
// position but replaces the list with the failure marker.
func (s ViewState) WithLogs(page *client.LogPage, r client.Result) ViewState {
	if !r.Success || page == nil {
		s.Logs = LogsState{Failed: true, Loaded: true}
		return s
	}
	s.Logs = LogsState{Entries: page.Logs, Loaded: true}
	s.Page = s.Page.Apply(page)
	return s
}

// LogsMessage returns the placeholder for the log list, or "" when rows exist
func (s ViewState) LogsMessage() string {
	switch {
	case s.Logs.Failed:
		return LoadFailed
	case s.Logs.Loaded && len(s.Logs.Entries) == 0:
		return NoRecords
	default:
		return ""
	}
}

// Masked returns the masked value or the not-set placeholder
func Masked(v string) string {
	if v == "" {
		return NotSet
	}
	return v
}

// FormatTime renders a timestamp in local time, or "-" when absent
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return EmptyMarker
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// FormatCount renders an optional counter, or "-" when absent
func FormatCount(n *int) string {
	if n == nil {
		return EmptyMarker
	}
	return strconv.Itoa(*n)
}
