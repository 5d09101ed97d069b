// ABOUTME: Schedule service for the daily check-in time
// ABOUTME: Validates and stores the schedule, computes next_run and signals reloads

package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/store"
)

// Reloader is notified whenever the schedule changes
type Reloader interface {
	Reload()
}

type ScheduleService struct {
	store    *store.Store
	reloader Reloader
	now      func() time.Time
}

func NewScheduleService(s *store.Store) *ScheduleService {
	return &ScheduleService{
		store: s,
		now:   time.Now,
	}
}

// WithReloader sets the component told about schedule changes
func (s *ScheduleService) WithReloader(r Reloader) *ScheduleService {
	s.reloader = r
	return s
}

// Get returns the schedule with next_run computed for enabled schedules
func (s *ScheduleService) Get(ctx context.Context) (*models.ScheduleConfig, error) {
	sc, err := s.store.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	return s.config(sc), nil
}

// Save stores the schedule. An enabled schedule requires an HH:MM time.
func (s *ScheduleService) Save(ctx context.Context, enabled bool, at string) (*models.ScheduleConfig, error) {
	at = strings.TrimSpace(at)
	if err := ValidateSchedule(enabled, at); err != nil {
		return nil, err
	}
	if at != "" && !ValidScheduleTime(at) {
		return nil, ErrInvalidScheduleTime
	}

	sc, err := s.store.SaveSchedule(ctx, enabled, at)
	if err != nil {
		return nil, err
	}
	zap.L().Info("schedule saved", zap.Bool("enabled", enabled), zap.String("time", at))
	s.reload()
	return s.config(sc), nil
}

// Delete disables the schedule and clears its time
func (s *ScheduleService) Delete(ctx context.Context) error {
	if _, err := s.store.SaveSchedule(ctx, false, ""); err != nil {
		return err
	}
	zap.L().Info("schedule deleted")
	s.reload()
	return nil
}

// NextRunAt reports when the scheduled check-in should next fire.
// The second result is false when the schedule is disabled.
func (s *ScheduleService) NextRunAt(ctx context.Context, now time.Time) (time.Time, bool, error) {
	sc, err := s.store.Schedule(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	if !sc.Enabled {
		return time.Time{}, false, nil
	}
	next, ok := NextRun(sc.Time, now)
	return next, ok, nil
}

// MarkRun records a scheduled run
func (s *ScheduleService) MarkRun(ctx context.Context, at time.Time) error {
	return s.store.MarkScheduleRun(ctx, at)
}

func (s *ScheduleService) config(sc models.Schedule) *models.ScheduleConfig {
	out := &models.ScheduleConfig{
		Enabled: sc.Enabled,
		Time:    sc.Time,
		LastRun: sc.LastRun,
	}
	if sc.Enabled {
		if next, ok := NextRun(sc.Time, s.now()); ok {
			out.NextRun = &next
		}
	}
	return out
}

func (s *ScheduleService) reload() {
	if s.reloader != nil {
		s.reloader.Reload()
	}
}
