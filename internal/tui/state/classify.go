// ABOUTME: Shared status classification for every dashboard status card
// ABOUTME: Maps ok/degraded/absent/idle levels to a badge style, icon and text

package state

import (
	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/tui/icons"
)

// Level is the health of one status card
type Level int

const (
	LevelOK Level = iota
	LevelDegraded
	LevelAbsent
	LevelIdle
)

// Style is the visual treatment of a badge
type Style int

const (
	StyleSuccess Style = iota
	StyleWarning
	StyleError
	StyleInfo
)

// Badge is what a status card renders
type Badge struct {
	Style Style
	Icon  icons.Icon
	Text  string
}

// Classify maps a level and label onto a badge
func Classify(level Level, text string) Badge {
	switch level {
	case LevelOK:
		return Badge{Style: StyleSuccess, Icon: icons.CheckOK, Text: text}
	case LevelDegraded:
		return Badge{Style: StyleWarning, Icon: icons.Warning, Text: text}
	case LevelIdle:
		return Badge{Style: StyleInfo, Icon: icons.Idle, Text: text}
	default:
		return Badge{Style: StyleError, Icon: icons.Critical, Text: text}
	}
}

// TokenBadge classifies the service token card
func TokenBadge(ts *client.TokenStatus) Badge {
	switch {
	case ts == nil || !ts.BoheSignToken.Exists:
		return Classify(LevelAbsent, "not configured")
	case ts.BoheSignToken.Valid:
		return Classify(LevelOK, "valid")
	default:
		return Classify(LevelDegraded, "needs refresh")
	}
}

// NewAPIBadge classifies the NewAPI credential card
func NewAPIBadge(ts *client.TokenStatus) Badge {
	if ts != nil && ts.NewAPI.Configured {
		return Classify(LevelOK, "configured")
	}
	return Classify(LevelAbsent, "not configured")
}

// SignBadge classifies today's check-in card
func SignBadge(ss *client.SignStatus) Badge {
	if ss != nil && ss.SignedToday {
		return Classify(LevelOK, "signed")
	}
	return Classify(LevelDegraded, "not signed")
}

// ScheduleBadge classifies the daily schedule card
func ScheduleBadge(sc *client.ScheduleConfig) Badge {
	if sc == nil || !sc.Enabled {
		return Classify(LevelIdle, "disabled")
	}
	if sc.Time == "" {
		return Classify(LevelOK, "enabled")
	}
	return Classify(LevelOK, sc.Time)
}
