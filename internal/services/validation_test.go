// ABOUTME: Tests for validation and masking helpers
// ABOUTME: Covers schedule times, paging bounds, secret masking and next-run math

package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abcd", "***"},
		{"abcde", "ab***de"},
		{"abcdefghijkl", "ab***kl"},
		{"abcdefghijklm", "abcdef***hijklm"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Mask(tc.in), "Mask(%q)", tc.in)
	}
}

func TestValidateSchedule(t *testing.T) {
	require.NoError(t, ValidateSchedule(false, ""))
	require.NoError(t, ValidateSchedule(true, "08:30"))
	require.NoError(t, ValidateSchedule(true, "23:59"))
	require.ErrorIs(t, ValidateSchedule(true, ""), ErrScheduleTimeRequired)

	for _, bad := range []string{"24:00", "8:30", "08:60", "0830", "08:30\n"} {
		err := ValidateSchedule(true, bad)
		require.True(t, errors.Is(err, ErrInvalidScheduleTime), "time %q", bad)
	}
}

func TestClampPaging(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, 5, 1, 5},
		{2, -1, 2, 1},
		{4, 100, 4, 50},
		{3, 50, 3, 50},
	}
	for _, tc := range tests {
		page, limit := ClampPaging(tc.page, tc.limit)
		require.Equal(t, tc.wantPage, page)
		require.Equal(t, tc.wantLimit, limit)
	}
}

func TestNextRun(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	morning := time.Date(2026, 10, 19, 7, 0, 0, 0, loc)

	next, ok := NextRun("08:30", morning)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 10, 19, 8, 30, 0, 0, loc), next)

	evening := time.Date(2026, 10, 19, 21, 0, 0, 0, loc)
	next, ok = NextRun("08:30", evening)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 10, 20, 8, 30, 0, 0, loc), next)

	exact := time.Date(2026, 10, 19, 8, 30, 0, 0, loc)
	next, _ = NextRun("08:30", exact)
	require.Equal(t, exact.AddDate(0, 0, 1), next)

	_, ok = NextRun("garbage", morning)
	require.False(t, ok)
}
