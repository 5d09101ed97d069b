// ABOUTME: Check-in service: lottery, CDK top-up, sign history and statistics
// ABOUTME: Every attempt through Sign is recorded in the sign log

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/metrics"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
	"github.com/wobuhui666/bohe-api-auto-sign/internal/store"
)

// cdkPreview is how much of a CDK appears in failure logs
const cdkPreview = 8

// SignUpstream is the part of the upstream used by the check-in flow
type SignUpstream interface {
	Lottery(ctx context.Context, token string) (*LotteryResult, error)
	UserInfo(ctx context.Context, token string) (*UserInfo, error)
	Topup(ctx context.Context, authorization, userID, cdk string) (int64, error)
}

// SignOutcome is the result of a check-in attempt.
// A failed attempt is not an error; errors are reserved for storage failures.
type SignOutcome struct {
	Success bool
	Message string
	Data    *models.SignResult
}

type SignService struct {
	store    *store.Store
	upstream SignUpstream
	mu       sync.Mutex // one check-in at a time
	now      func() time.Time
}

func NewSignService(s *store.Store, upstream SignUpstream) *SignService {
	return &SignService{
		store:    s,
		upstream: upstream,
		now:      time.Now,
	}
}

// Sign runs lottery then top-up and records the attempt with trigger
func (s *SignService) Sign(ctx context.Context, trigger string) (*SignOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome, logMessage := s.attempt(ctx)

	status := models.StatusSuccess
	if !outcome.Success {
		status = models.StatusFailure
	}
	if _, err := s.store.AddSignLog(ctx, status, trigger, logMessage); err != nil {
		return nil, err
	}
	metrics.RecordSign(trigger, status)

	zap.L().Info("check-in finished",
		zap.String("trigger", trigger),
		zap.String("status", status),
		zap.String("message", sanitizeForLog(logMessage)),
	)
	return outcome, nil
}

// attempt performs the check-in and returns the outcome plus the log line
func (s *SignService) attempt(ctx context.Context) (*SignOutcome, string) {
	c, err := s.store.Credentials(ctx)
	if err != nil {
		return failed(err.Error()), "lottery failed: " + err.Error()
	}
	if c.BoheSignToken == "" {
		msg := ErrNoServiceToken.Error()
		return failed(msg), "lottery failed: " + msg
	}

	lottery, err := s.upstream.Lottery(ctx, c.BoheSignToken)
	if err != nil {
		msg := upstreamMessage(err, "lottery failed")
		return failed(msg), "lottery failed: " + msg
	}
	if lottery.CDK == "" {
		msg := "lottery succeeded but returned no CDK"
		return failed(msg), msg
	}

	lotteryQuota := int64(lottery.Quota)
	lotteryMessage := fmt.Sprintf("lottery won %s, quota %d", lottery.Label, lotteryQuota)

	var quota int64
	if !c.NewAPIConfigured() {
		err = ErrNewAPINotConfigured
	} else {
		quota, err = s.upstream.Topup(ctx, c.NewAPIAuthorization, c.NewAPIUserID, lottery.CDK)
	}
	if err != nil {
		msg := upstreamMessage(err, "top-up failed")
		outcome := &SignOutcome{
			Success: false,
			Message: "lottery succeeded, but top-up failed: " + msg,
			Data:    &models.SignResult{CDK: lottery.CDK, LotteryQuota: lotteryQuota},
		}
		return outcome, fmt.Sprintf("lottery succeeded (CDK: %s...), but top-up failed: %s", preview(lottery.CDK), msg)
	}

	if quota == 0 {
		quota = lotteryQuota
	}
	msg := fmt.Sprintf("sign succeeded: %s, redeemed quota %d", lotteryMessage, quota)
	return &SignOutcome{
		Success: true,
		Message: msg,
		Data: &models.SignResult{
			CDK:   lottery.CDK,
			Quota: quota,
			Times: lottery.Times,
			Label: lottery.Label,
		},
	}, msg
}

// Spin runs the lottery only, with a caller-supplied token. Nothing is logged.
func (s *SignService) Spin(ctx context.Context, token string) *SignOutcome {
	lottery, err := s.upstream.Lottery(ctx, token)
	if err != nil {
		return failed(upstreamMessage(err, "lottery failed"))
	}
	return &SignOutcome{
		Success: true,
		Message: fmt.Sprintf("lottery won %s, quota %d", lottery.Label, int64(lottery.Quota)),
		Data: &models.SignResult{
			CDK:   lottery.CDK,
			Quota: int64(lottery.Quota),
			Times: lottery.Times,
			Label: lottery.Label,
		},
	}
}

// Status computes sign statistics from the local log, preferring upstream
// counters when the service token can fetch them
func (s *SignService) Status(ctx context.Context) (*models.SignStatus, error) {
	times, err := s.store.SuccessTimes(ctx)
	if err != nil {
		return nil, err
	}
	status := ComputeStats(times, s.now())

	c, err := s.store.Credentials(ctx)
	if err != nil || c.BoheSignToken == "" {
		return &status, nil
	}
	info, err := s.upstream.UserInfo(ctx, c.BoheSignToken)
	if err != nil {
		zap.L().Debug("user info unavailable, using local stats", zap.Error(err))
		return &status, nil
	}
	if info.ContinuousDays != nil {
		status.ContinuousDays = info.ContinuousDays
	}
	if info.TotalSigns != nil {
		status.TotalSigns = info.TotalSigns
	}
	return &status, nil
}

// Logs returns one page of sign history with paging clamped to bounds
func (s *SignService) Logs(ctx context.Context, page, limit int) (*models.LogPage, error) {
	page, limit = ClampPaging(page, limit)
	rows, total, err := s.store.SignLogs(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	out := &models.LogPage{
		Logs:  make([]models.LogEntry, 0, len(rows)),
		Total: int(total),
		Page:  page,
		Limit: limit,
	}
	for _, row := range rows {
		out.Logs = append(out.Logs, row.Entry())
	}
	return out, nil
}

// ComputeStats derives sign statistics from successful sign times (newest
// first). The streak counts consecutive calendar days ending today, or
// yesterday when today has no success yet.
func ComputeStats(successes []time.Time, now time.Time) models.SignStatus {
	total := len(successes)
	streak := 0
	status := models.SignStatus{TotalSigns: &total, ContinuousDays: &streak}
	if total == 0 {
		return status
	}

	last := successes[0]
	status.LastSignTime = &last

	loc := now.Location()
	days := make(map[string]bool, total)
	for _, t := range successes {
		days[t.In(loc).Format(time.DateOnly)] = true
	}

	today := now.Format(time.DateOnly)
	status.SignedToday = days[today]

	day := now
	if !status.SignedToday {
		day = day.AddDate(0, 0, -1)
	}
	for days[day.Format(time.DateOnly)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return status
}

func failed(message string) *SignOutcome {
	return &SignOutcome{Success: false, Message: message}
}

// upstreamMessage prefers the upstream's own message over wrapped transport text
func upstreamMessage(err error, fallback string) string {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Error()
	}
	if err == nil {
		return fallback
	}
	return err.Error()
}

func preview(cdk string) string {
	if len(cdk) <= cdkPreview {
		return cdk
	}
	return cdk[:cdkPreview]
}
