// ABOUTME: Tests for shared CLI output helpers
// ABOUTME: Verifies JSON output errors surface as an exit code instead of blank output

package cmd

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestEmitJSON_WritesIndentedValue(t *testing.T) {
	var buf bytes.Buffer

	if code := emitJSON(&buf, map[string]string{"status": "ok"}, exitFailed); code != exitFailed {
		t.Errorf("expected passed-through exit code %d, got %d", exitFailed, code)
	}

	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got["status"] != "ok" {
		t.Errorf("unexpected output %s", buf.String())
	}
}

func TestEmitJSON_EncodingFailure(t *testing.T) {
	var buf bytes.Buffer

	code := emitJSON(&buf, map[string]float64{"quota": math.Inf(1)}, exitOK)

	if code != exitErrored {
		t.Errorf("expected exit code %d, got %d", exitErrored, code)
	}
	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "Error: encode JSON output") {
		t.Errorf("expected encoding error message, got %q", out)
	}
}
