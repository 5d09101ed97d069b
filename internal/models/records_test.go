package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCredential_NewAPIConfigured(t *testing.T) {
	tests := []struct {
		name string
		cred Credential
		want bool
	}{
		{"empty", Credential{}, false},
		{"authorization only", Credential{NewAPIAuthorization: "sk-1"}, false},
		{"user id only", Credential{NewAPIUserID: "42"}, false},
		{"both", Credential{NewAPIAuthorization: "sk-1", NewAPIUserID: "42"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cred.NewAPIConfigured(); got != tt.want {
				t.Errorf("NewAPIConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignLog_Entry(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	entry := SignLog{
		ID:        "0b8f4f9e-2f7a-4c1e-9d3e-3f1f5a7c2b10",
		Status:    StatusFailure,
		Trigger:   TriggerScheduled,
		Message:   "lottery failed: upstream returned 503",
		CreatedAt: at,
	}.Entry()

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["status"] != "failure" || got["trigger"] != "scheduled" {
		t.Errorf("unexpected status/trigger in %s", data)
	}
	if got["time"] != "2026-10-19T08:30:00Z" {
		t.Errorf("time = %v", got["time"])
	}
}

func TestEnvelope_OmitsEmptyData(t *testing.T) {
	data, err := json.Marshal(Envelope{Success: false, Message: "token must not be empty"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"success":false,"message":"token must not be empty"}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}
