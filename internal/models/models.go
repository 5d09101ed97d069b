// ABOUTME: Wire models for the check-in API
// ABOUTME: JSON envelope and response payloads served under /api

package models

import "time"

// Envelope is the uniform response body of every endpoint.
// Business failures are reported with Success false and HTTP 200.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

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

// NewAPIState describes the quota service credential
type NewAPIState struct {
	Configured          bool   `json:"configured"`
	AuthorizationMasked string `json:"authorization_masked,omitempty"`
	UserID              string `json:"user_id,omitempty"`
}

// TokenStatus is the snapshot served by GET /api/token/status
type TokenStatus struct {
	LinuxDoToken        CredentialState   `json:"linux_do_token"`
	LinuxDoConnectToken CredentialState   `json:"linux_do_connect_token"`
	BoheSignToken       ServiceTokenState `json:"bohe_sign_token"`
	NewAPI              NewAPIState       `json:"newapi"`
}

// RefreshResult is the data of a successful POST /api/token/refresh
type RefreshResult struct {
	BoheSignToken ServiceTokenState `json:"bohe_sign_token"`
}

// SignStatus is served by GET /api/sign/status
type SignStatus struct {
	SignedToday    bool       `json:"signed_today"`
	LastSignTime   *time.Time `json:"last_sign_time,omitempty"`
	ContinuousDays *int       `json:"continuous_days,omitempty"`
	TotalSigns     *int       `json:"total_signs,omitempty"`
}

// SignResult is the data of a check-in attempt
type SignResult struct {
	CDK          string `json:"cdk,omitempty"`
	Quota        int64  `json:"quota,omitempty"`
	LotteryQuota int64  `json:"lottery_quota,omitempty"`
	Times        int    `json:"times,omitempty"`
	Label        string `json:"label,omitempty"`
}

// LogEntry is one row of sign history
type LogEntry struct {
	ID      string    `json:"id"`
	Time    time.Time `json:"time"`
	Status  string    `json:"status"`
	Trigger string    `json:"trigger"`
	Message string    `json:"message,omitempty"`
}

// LogPage is served by GET /api/sign/logs
type LogPage struct {
	Logs  []LogEntry `json:"logs"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// ScheduleConfig is served by GET /api/schedule
type ScheduleConfig struct {
	Enabled bool       `json:"enabled"`
	Time    string     `json:"time,omitempty"`
	NextRun *time.Time `json:"next_run,omitempty"`
	LastRun *time.Time `json:"last_run,omitempty"`
}

// HealthResponse is served by GET /api/health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// SetTokenRequest is the body of POST /api/token/set
type SetTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// NewAPIRequest is the body of POST /api/token/newapi
type NewAPIRequest struct {
	Authorization string `json:"authorization" validate:"required"`
	UserID        string `json:"user_id" validate:"required"`
}

// ScheduleRequest is the body of POST /api/schedule.
// A null time decodes as empty.
type ScheduleRequest struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time" validate:"required_if=Enabled true,omitempty,hhmm"`
}
