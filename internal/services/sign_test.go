// ABOUTME: Tests for the check-in service
// ABOUTME: Covers each failure branch of the flow, logging and statistics

package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/models"
)

func newSignService(t *testing.T, withToken, withNewAPI bool) (*SignService, *fakeUpstream) {
	t.Helper()
	fake, upstream := newFakeUpstream(t)
	s := newTestStore(t)
	require.NoError(t, s.UpdateCredentials(context.Background(), func(c *models.Credential) {
		if withToken {
			c.BoheSignToken = "service-token"
		}
		if withNewAPI {
			c.NewAPIAuthorization = "Bearer sk-newapi"
			c.NewAPIUserID = "42"
		}
	}))
	return NewSignService(s, upstream), fake
}

func lastLog(t *testing.T, svc *SignService) models.LogEntry {
	t.Helper()
	page, err := svc.Logs(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotEmpty(t, page.Logs)
	return page.Logs[0]
}

func TestSign_Success(t *testing.T) {
	svc, fake := newSignService(t, true, true)
	fake.ok("/lottery", map[string]any{"cdk": "CDK-1234567890", "quota": 500, "times": 1, "label": "5 dollars"})
	fake.ok("/topup", 500000)

	out, err := svc.Sign(context.Background(), models.TriggerManual)
	require.NoError(t, err)
	require.True(t, out.Success)
	require.Equal(t, "sign succeeded: lottery won 5 dollars, quota 500, redeemed quota 500000", out.Message)
	require.Equal(t, int64(500000), out.Data.Quota)

	topup := fake.requests["/topup"]
	require.Equal(t, "Bearer sk-newapi", topup.Header.Get("Authorization"))
	require.Equal(t, "42", topup.Header.Get("New-API-User"))
	require.Equal(t, "CDK-1234567890", fake.bodies["/topup"]["key"])

	entry := lastLog(t, svc)
	require.Equal(t, models.StatusSuccess, entry.Status)
	require.Equal(t, models.TriggerManual, entry.Trigger)
}

func TestSign_Failures(t *testing.T) {
	tests := []struct {
		name        string
		withToken   bool
		withNewAPI  bool
		setup       func(f *fakeUpstream)
		wantMessage string
		wantLog     string
		wantTopups  int
	}{
		{
			name:        "no service token",
			withNewAPI:  true,
			setup:       func(*fakeUpstream) {},
			wantMessage: ErrNoServiceToken.Error(),
			wantLog:     "lottery failed: " + ErrNoServiceToken.Error(),
		},
		{
			name:       "lottery http error",
			withToken:  true,
			withNewAPI: true,
			setup: func(f *fakeUpstream) {
				f.reply("/lottery", http.StatusBadGateway, map[string]any{})
			},
			wantMessage: "lottery request failed, HTTP status 502",
			wantLog:     "lottery failed: lottery request failed, HTTP status 502",
		},
		{
			name:       "lottery refused",
			withToken:  true,
			withNewAPI: true,
			setup: func(f *fakeUpstream) {
				f.reply("/lottery", http.StatusOK, map[string]any{"success": false, "message": "already spun today"})
			},
			wantMessage: "already spun today",
			wantLog:     "lottery failed: already spun today",
		},
		{
			name:       "no cdk",
			withToken:  true,
			withNewAPI: true,
			setup: func(f *fakeUpstream) {
				f.ok("/lottery", map[string]any{"quota": 1})
			},
			wantMessage: "lottery succeeded but returned no CDK",
			wantLog:     "lottery succeeded but returned no CDK",
		},
		{
			name:      "newapi not configured",
			withToken: true,
			setup: func(f *fakeUpstream) {
				f.ok("/lottery", map[string]any{"cdk": "CDK-ABCDEFGHIJ", "quota": 100})
			},
			wantMessage: "lottery succeeded, but top-up failed: " + ErrNewAPINotConfigured.Error(),
			wantLog:     "lottery succeeded (CDK: CDK-ABCD...), but top-up failed: " + ErrNewAPINotConfigured.Error(),
		},
		{
			name:       "top-up refused",
			withToken:  true,
			withNewAPI: true,
			setup: func(f *fakeUpstream) {
				f.ok("/lottery", map[string]any{"cdk": "CDK-ABCDEFGHIJ", "quota": 100})
				f.reply("/topup", http.StatusOK, map[string]any{"success": false, "message": "code already used"})
			},
			wantMessage: "lottery succeeded, but top-up failed: code already used",
			wantLog:     "lottery succeeded (CDK: CDK-ABCD...), but top-up failed: code already used",
			wantTopups:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, fake := newSignService(t, tc.withToken, tc.withNewAPI)
			tc.setup(fake)

			out, err := svc.Sign(context.Background(), models.TriggerScheduled)
			require.NoError(t, err)
			require.False(t, out.Success)
			require.Equal(t, tc.wantMessage, out.Message)
			require.Equal(t, tc.wantTopups, fake.count("/topup"))

			entry := lastLog(t, svc)
			require.Equal(t, models.StatusFailure, entry.Status)
			require.Equal(t, models.TriggerScheduled, entry.Trigger)
			require.Equal(t, tc.wantLog, entry.Message)
		})
	}
}

func TestSpin_UsesSuppliedToken(t *testing.T) {
	svc, fake := newSignService(t, false, false)
	fake.ok("/lottery", map[string]any{"cdk": "CDK-1", "quota": 10, "label": "small"})

	out := svc.Spin(context.Background(), "caller-token")
	require.True(t, out.Success)
	require.Equal(t, "CDK-1", out.Data.CDK)
	require.Equal(t, "Bearer caller-token", fake.requests["/lottery"].Header.Get("Authorization"))

	page, err := svc.Logs(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Zero(t, page.Total, "spin must not be logged")
}

func TestLogs_ClampsPaging(t *testing.T) {
	svc, _ := newSignService(t, false, false)

	page, err := svc.Logs(context.Background(), 0, 500)
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Equal(t, MaxLogLimit, page.Limit)
	require.NotNil(t, page.Logs)
}

func TestComputeStats(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, loc)
	day := func(offset, hour int) time.Time {
		return time.Date(2026, 10, 19+offset, hour, 0, 0, 0, loc)
	}

	empty := ComputeStats(nil, now)
	require.False(t, empty.SignedToday)
	require.Nil(t, empty.LastSignTime)
	require.Equal(t, 0, *empty.TotalSigns)
	require.Equal(t, 0, *empty.ContinuousDays)

	withToday := ComputeStats([]time.Time{day(0, 9), day(-1, 9), day(-1, 8), day(-2, 9), day(-4, 9)}, now)
	require.True(t, withToday.SignedToday)
	require.Equal(t, 3, *withToday.ContinuousDays)
	require.Equal(t, 5, *withToday.TotalSigns)
	require.True(t, withToday.LastSignTime.Equal(day(0, 9)))

	notYetToday := ComputeStats([]time.Time{day(-1, 9), day(-2, 9)}, now)
	require.False(t, notYetToday.SignedToday)
	require.Equal(t, 2, *notYetToday.ContinuousDays)

	broken := ComputeStats([]time.Time{day(-3, 9)}, now)
	require.Equal(t, 0, *broken.ContinuousDays)
}

func TestStatus_PrefersUpstreamCounters(t *testing.T) {
	svc, fake := newSignService(t, true, true)
	_, err := svc.store.AddSignLog(context.Background(), models.StatusSuccess, models.TriggerManual, "ok")
	require.NoError(t, err)
	fake.ok("/userinfo", map[string]any{"continuous_days": 30, "total_signs": 99})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.True(t, status.SignedToday)
	require.Equal(t, 30, *status.ContinuousDays)
	require.Equal(t, 99, *status.TotalSigns)
}

func TestStatus_FallsBackToLocalStats(t *testing.T) {
	svc, fake := newSignService(t, true, true)
	fake.reply("/userinfo", http.StatusInternalServerError, map[string]any{})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, *status.TotalSigns)
}
