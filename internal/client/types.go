// ABOUTME: Response and request types for the check-in API
// ABOUTME: Mirrors the JSON shapes served under /api

package client

import "time"

// CredentialState describes a stored login credential
type CredentialState struct {
	Exists bool   `json:"exists"`
	Masked string `json:"masked,omitempty"`
}

// ServiceTokenState describes the derived service token
type ServiceTokenState struct {
	Exists bool   `json:"exists"`
	Valid  bool   `json:"valid"`
	Masked string `json:"masked,omitempty"`
}

// NewAPIState describes the third-party quota credential
type NewAPIState struct {
	Configured          bool   `json:"configured"`
	AuthorizationMasked string `json:"authorization_masked,omitempty"`
	UserID              string `json:"user_id,omitempty"`
}

// TokenStatus represents the /api/token/status response data
type TokenStatus struct {
	LinuxDoToken        CredentialState   `json:"linux_do_token"`
	LinuxDoConnectToken CredentialState   `json:"linux_do_connect_token"`
	BoheSignToken       ServiceTokenState `json:"bohe_sign_token"`
	NewAPI              NewAPIState       `json:"newapi"`
}

// SignStatus represents the /api/sign/status response data
type SignStatus struct {
	SignedToday    bool       `json:"signed_today"`
	LastSignTime   *time.Time `json:"last_sign_time,omitempty"`
	ContinuousDays *int       `json:"continuous_days,omitempty"`
	TotalSigns     *int       `json:"total_signs,omitempty"`
}

// Log entry status and trigger values
const (
	LogStatusSuccess = "success"
	LogStatusFailure = "failure"

	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

// LogEntry is one row of sign history
type LogEntry struct {
	ID      string    `json:"id,omitempty"`
	Time    time.Time `json:"time"`
	Status  string    `json:"status"`
	Trigger string    `json:"trigger"`
	Message string    `json:"message,omitempty"`
}

// LogPage represents the /api/sign/logs response data
type LogPage struct {
	Logs  []LogEntry `json:"logs"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// ScheduleConfig represents the /api/schedule response data
type ScheduleConfig struct {
	Enabled bool       `json:"enabled"`
	Time    string     `json:"time,omitempty"`
	NextRun *time.Time `json:"next_run,omitempty"`
	LastRun *time.Time `json:"last_run,omitempty"`
}

// ScheduleRequest is the body of POST /api/schedule.
// Time is sent as null when the schedule is disabled.
type ScheduleRequest struct {
	Enabled bool    `json:"enabled"`
	Time    *string `json:"time"`
}

// SetTokenRequest is the body of POST /api/token/set
type SetTokenRequest struct {
	Token string `json:"token"`
}

// NewAPIRequest is the body of POST /api/token/newapi
type NewAPIRequest struct {
	Authorization string `json:"authorization"`
	UserID        string `json:"user_id"`
}

// HealthResponse represents the /api/health response data
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
