// ABOUTME: Tests for the status command
// ABOUTME: Verifies concurrent status fetch, output formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/wobuhui666/bohe-api-auto-sign/internal/client"
)

func TestStatusCommand_Success(t *testing.T) {
	api, server := newFakeAPI(t)
	api.healthyStatus()

	var buf bytes.Buffer
	code := runStatus(context.Background(), &buf, client.New(server.URL), nil)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}

	output := buf.String()
	for _, want := range []string{server.URL, "valid", "ab***yz", "user 42", "signed", "12", "08:30"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	for _, route := range []string{"GET /api/token/status", "GET /api/sign/status", "GET /api/schedule"} {
		if api.count(route) != 1 {
			t.Errorf("expected one %s, got %d", route, api.count(route))
		}
	}
}

func TestStatusCommand_JSON(t *testing.T) {
	api, server := newFakeAPI(t)
	api.healthyStatus()
	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runStatus(context.Background(), &buf, client.New(server.URL), nil); code != exitOK {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"token", "sign", "schedule"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("expected %q in JSON output", key)
		}
	}
}

func TestStatusCommand_PartialFailure(t *testing.T) {
	api, server := newFakeAPI(t)
	api.healthyStatus()
	api.on("GET /api/sign/status", false, "database locked", nil)

	var buf bytes.Buffer
	code := runStatus(context.Background(), &buf, client.New(server.URL), nil)
	if code != exitErrored {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "database locked") {
		t.Errorf("expected server message, got %s", buf.String())
	}
}

func TestStatusCommand_ConnectionError(t *testing.T) {
	var buf bytes.Buffer
	code := runStatus(context.Background(), &buf, client.New("http://localhost:99999"), nil)
	if code != exitErrored {
		t.Errorf("expected exit code 2 for connection error, got %d", code)
	}
}

func TestFormatStatusHuman_Unconfigured(t *testing.T) {
	output := formatStatusHuman("http://localhost:8080", &statusReport{
		Token:    &client.TokenStatus{},
		Sign:     &client.SignStatus{},
		Schedule: &client.ScheduleConfig{},
	})

	for _, want := range []string{"not configured", "not set", "not signed", "disabled"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "Next run") {
		t.Error("expected next run hidden when schedule disabled")
	}
}
