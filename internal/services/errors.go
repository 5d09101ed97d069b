// ABOUTME: Sentinel errors for the check-in services
// ABOUTME: Matched with errors.Is by handlers to produce envelope messages

package services

import "errors"

var (
	// ErrNoServiceToken means no service token is stored
	ErrNoServiceToken = errors.New("no valid service token, set the login token and refresh first")
	// ErrNoLoginToken means no linux.do token is stored
	ErrNoLoginToken = errors.New("no login token found, set the login token first")
	// ErrLoginNotConfigured means LOGIN_URL is unset so tokens cannot be refreshed
	ErrLoginNotConfigured = errors.New("token refresh is not configured on the server")
	// ErrRefreshFailed wraps an upstream login failure
	ErrRefreshFailed = errors.New("refresh failed")
	// ErrNewAPINotConfigured means the NewAPI authorization or user ID is missing
	ErrNewAPINotConfigured = errors.New("NewAPI credentials are not configured")
	// ErrEmptyToken rejects a blank login token
	ErrEmptyToken = errors.New("token must not be empty")
	// ErrScheduleTimeRequired rejects an enabled schedule without a time
	ErrScheduleTimeRequired = errors.New("time is required when the schedule is enabled")
	// ErrInvalidScheduleTime rejects a time that is not HH:MM
	ErrInvalidScheduleTime = errors.New("time must be HH:MM")
)
