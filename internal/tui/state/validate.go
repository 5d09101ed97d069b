// ABOUTME: Client-side input checks run before any write request
// ABOUTME: Shared by the dashboard and the CLI write commands

package state

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyToken        = errors.New("please enter a token")
	ErrEmptyNewAPI       = errors.New("please fill in both authorization and user ID")
	ErrEmptyScheduleTime = errors.New("please choose a time for the schedule")
	ErrBadScheduleTime   = errors.New("time must be in HH:MM format")
)

// scheduleTime is the two-digit 24-hour form the server accepts
var scheduleTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateToken returns the trimmed token or ErrEmptyToken
func ValidateToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

// ValidateNewAPI returns the trimmed pair or ErrEmptyNewAPI
func ValidateNewAPI(authorization, userID string) (string, string, error) {
	authorization = strings.TrimSpace(authorization)
	userID = strings.TrimSpace(userID)
	if authorization == "" || userID == "" {
		return "", "", ErrEmptyNewAPI
	}
	return authorization, userID, nil
}

// ValidateSchedule checks that an enabled schedule carries a HH:MM time.
// A time given with a disabled schedule must be well formed too.
func ValidateSchedule(enabled bool, at string) (string, error) {
	at = strings.TrimSpace(at)
	if enabled && at == "" {
		return "", ErrEmptyScheduleTime
	}
	if at != "" && !scheduleTime.MatchString(at) {
		return "", ErrBadScheduleTime
	}
	return at, nil
}
