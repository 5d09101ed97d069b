// ABOUTME: Tests for the toast stack
// ABOUTME: Verifies independent expiry and rendering order

package toast

import (
	"strings"
	"testing"
	"time"
)

func TestPush_ExpiresOnlyItsOwnToast(t *testing.T) {
	s := NewStack(time.Millisecond)
	first := s.Push(Success, "token saved")
	second := s.Push(Error, "sign failed")

	if s.Len() != 2 {
		t.Fatalf("expected 2 toasts, got %d", s.Len())
	}

	msg, ok := first().(ExpiredMsg)
	if !ok {
		t.Fatalf("expected ExpiredMsg from toast timer")
	}
	s.Dismiss(msg.ID)

	if s.Len() != 1 || s.Items()[0].Message != "sign failed" {
		t.Errorf("expected only the second toast to remain, got %+v", s.Items())
	}

	msg = second().(ExpiredMsg)
	s.Dismiss(msg.ID)
	if s.Len() != 0 {
		t.Errorf("expected empty stack, got %+v", s.Items())
	}
}

func TestDismiss_UnknownIDIsNoop(t *testing.T) {
	s := NewStack(0)
	s.Push(Info, "hello")
	s.Dismiss(99)
	if s.Len() != 1 {
		t.Errorf("expected toast to survive unknown dismiss")
	}
}

func TestNewStack_DefaultTTL(t *testing.T) {
	if s := NewStack(0); s.ttl != DefaultTTL {
		t.Errorf("expected default ttl %v, got %v", DefaultTTL, s.ttl)
	}
}

func TestView_NewestLast(t *testing.T) {
	s := NewStack(0)
	if s.View() != "" {
		t.Error("expected empty view for empty stack")
	}
	s.Push(Warning, "older")
	s.Push(Success, "newer")
	out := s.View()
	if strings.Index(out, "older") > strings.Index(out, "newer") {
		t.Errorf("expected newest toast last, got:\n%s", out)
	}
}
