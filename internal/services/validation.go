// ABOUTME: Input validation and redaction helpers for the check-in services
// ABOUTME: Schedule time format, log-page bounds, secret masking and log sanitizing

package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Paging bounds for the sign log
const (
	DefaultLogPage  = 1
	DefaultLogLimit = 10
	MaxLogLimit     = 50
)

// scheduleTimePattern matches a 24-hour HH:MM time of day
var scheduleTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// sanitizeForLog removes control characters from strings to prevent log injection
// when including upstream or user input in messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1 // Remove control characters
		}
		return r
	}, s)
}

// ValidScheduleTime reports whether at is a 24-hour HH:MM time
func ValidScheduleTime(at string) bool {
	return scheduleTimePattern.MatchString(at)
}

// ValidateSchedule checks that an enabled schedule carries a valid time
func ValidateSchedule(enabled bool, at string) error {
	if !enabled {
		return nil
	}
	if at == "" {
		return ErrScheduleTimeRequired
	}
	if !ValidScheduleTime(at) {
		return fmt.Errorf("%w: %s", ErrInvalidScheduleTime, sanitizeForLog(at))
	}
	return nil
}

// ClampPaging applies defaults to missing values and clamps out-of-range ones
func ClampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultLogPage
	}
	switch {
	case limit == 0:
		limit = DefaultLogLimit
	case limit < 1:
		limit = 1
	case limit > MaxLogLimit:
		limit = MaxLogLimit
	}
	return page, limit
}

// Mask redacts a secret for display: first and last six characters for long
// values, first and last two for short ones, "***" for very short ones.
func Mask(secret string) string {
	const show = 6
	if secret == "" {
		return ""
	}
	if len(secret) <= show*2 {
		if len(secret) > 4 {
			return secret[:2] + "***" + secret[len(secret)-2:]
		}
		return "***"
	}
	return secret[:show] + "***" + secret[len(secret)-show:]
}

// NextRun returns the next occurrence of the HH:MM time at or after now,
// in now's location. The second result is false when at is not a valid time.
func NextRun(at string, now time.Time) (time.Time, bool) {
	if !ValidScheduleTime(at) {
		return time.Time{}, false
	}
	t, err := time.Parse("15:04", at)
	if err != nil {
		return time.Time{}, false
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, true
}
