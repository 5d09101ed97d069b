// ABOUTME: Tests for the check command
// ABOUTME: Verifies check evaluation, output formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
)

func TestPerformChecks(t *testing.T) {
	tests := []struct {
		name       string
		token      client.ServiceTokenState
		signed     bool
		wantFailed int
	}{
		{"all good", client.ServiceTokenState{Exists: true, Valid: true}, true, 0},
		{"invalid token", client.ServiceTokenState{Exists: true}, true, 1},
		{"missing token and unsigned", client.ServiceTokenState{}, false, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results := performChecks(&statusReport{
				Token:    &client.TokenStatus{BoheSignToken: tc.token},
				Sign:     &client.SignStatus{SignedToday: tc.signed},
				Schedule: &client.ScheduleConfig{},
			})
			if _, failed := countResults(results); failed != tc.wantFailed {
				t.Errorf("expected %d failed, got %d", tc.wantFailed, failed)
			}
		})
	}
}

func TestFormatCheckHuman(t *testing.T) {
	output := formatCheckHuman([]checkResult{
		{name: "Service token", detail: "valid", passed: true},
		{name: "Today's check-in", detail: "not signed yet", passed: false},
	})

	if !strings.Contains(output, "✓ Service token") || !strings.Contains(output, "✗ Today's check-in") {
		t.Errorf("unexpected output:\n%s", output)
	}
	if !strings.Contains(output, "FAILED: 1 check(s) failed") {
		t.Errorf("expected failure summary, got:\n%s", output)
	}
}

func TestCheckJSON(t *testing.T) {
	data, _ := json.Marshal(checkJSON([]checkResult{{name: "Service token", passed: true}}))

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed["status"] != "passed" {
		t.Errorf("expected status passed, got %v", parsed["status"])
	}
}

func TestCheckCommand_AllPassed(t *testing.T) {
	api, server := newFakeAPI(t)
	api.healthyStatus()

	var buf bytes.Buffer
	if code := runCheck(context.Background(), &buf, client.New(server.URL), nil); code != exitOK {
		t.Errorf("expected exit code 0, got %d: %s", code, buf.String())
	}
}

func TestCheckCommand_NotSigned(t *testing.T) {
	api, server := newFakeAPI(t)
	api.healthyStatus()
	api.on("GET /api/sign/status", true, "", map[string]any{"signed_today": false})

	var buf bytes.Buffer
	if code := runCheck(context.Background(), &buf, client.New(server.URL), nil); code != exitFailed {
		t.Errorf("expected exit code 1, got %d", code)
	}
}

func TestCheckCommand_ConnectionError(t *testing.T) {
	var buf bytes.Buffer
	if code := runCheck(context.Background(), &buf, client.New("http://localhost:99999"), nil); code != exitErrored {
		t.Errorf("expected exit code 2, got %d", code)
	}
}
