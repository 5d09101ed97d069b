// ABOUTME: Daily time-of-day runner for the scheduled check-in
// ABOUTME: Waits for the next run reported by its source and re-plans on Reload

package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultRetry is the wait before asking the source again after it failed
const DefaultRetry = time.Minute

// Source reports when the job should next fire. The second result is false
// while the schedule is disabled.
type Source interface {
	NextRunAt(ctx context.Context, now time.Time) (time.Time, bool, error)
}

// RunnerFunc performs one scheduled run
type RunnerFunc func(ctx context.Context, at time.Time)

type Scheduler struct {
	source       Source
	runner       RunnerFunc
	retry        time.Duration
	now          func() time.Time
	reload       chan struct{}
	controlMutex sync.Mutex
	cancel       context.CancelFunc
	done         chan struct{}
}

func New(source Source, runner RunnerFunc) *Scheduler {
	return &Scheduler{
		source: source,
		runner: runner,
		retry:  DefaultRetry,
		now:    time.Now,
		reload: make(chan struct{}, 1),
	}
}

// Start launches the loop. Calling Start twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	if s == nil || s.runner == nil || s.source == nil {
		return
	}
	s.controlMutex.Lock()
	if s.cancel != nil {
		s.controlMutex.Unlock()
		return
	}
	runtimeCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	done := make(chan struct{})
	s.done = done
	s.controlMutex.Unlock()

	go s.loop(runtimeCtx, done)
}

// Reload asks the loop to recompute the next run
func (s *Scheduler) Reload() {
	if s == nil {
		return
	}
	select {
	case s.reload <- struct{}{}:
	default:
	}
}

// Stop cancels the loop and waits for an in-flight run to finish
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	s.controlMutex.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.controlMutex.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		wait, fireAt, armed := s.plan(ctx)

		var timerC <-chan time.Time
		var timer *time.Timer
		if armed {
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return
		case <-s.reload:
			stopTimer(timer)
			zap.L().Debug("schedule reloaded")
		case <-timerC:
			if fireAt.IsZero() {
				continue
			}
			zap.L().Info("scheduled run starting", zap.Time("at", fireAt))
			s.runner(ctx, s.now())
		}
	}
}

// plan returns how long to wait and the run time it is waiting for.
// A zero run time with armed set means the source failed and should be retried.
func (s *Scheduler) plan(ctx context.Context) (time.Duration, time.Time, bool) {
	now := s.now()
	next, enabled, err := s.source.NextRunAt(ctx, now)
	if err != nil {
		zap.L().Warn("failed to load schedule", zap.Error(err))
		return s.retry, time.Time{}, true
	}
	if !enabled {
		return 0, time.Time{}, false
	}
	wait := next.Sub(now)
	if wait < 0 {
		wait = 0
	}
	zap.L().Info("next scheduled run", zap.Time("at", next), zap.Duration("in", wait))
	return wait, next, true
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
