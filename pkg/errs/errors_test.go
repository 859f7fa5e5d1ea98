package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapAndIsCode(t *testing.T) {
	base := errors.New("file missing")
	err := Wrap(base, ErrHistoryRead, "state.list").WithCheck("ai-health")

	if !IsCode(err, ErrHistoryRead) {
		t.Fatal("expected IsCode to match")
	}
	if IsCode(err, ErrHistoryWrite) {
		t.Fatal("expected IsCode mismatch for other code")
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped cause to unwrap")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, ErrConfig, "noop") != nil {
		t.Fatal("wrapping nil must return nil")
	}
}

func TestErrorFormatting(t *testing.T) {
	err := Newf(ErrDockerConnect, "probe.container.connect", "daemon not running").
		WithCheck("rag-container").
		WithAdvice("Make sure the Docker daemon is running.")

	msg := err.Error()
	for _, want := range []string{"ERR-DOCKER-001", "probe.container.connect", "rag-container"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("Error() missing %q: %s", want, msg)
		}
	}

	um := err.UserMessage()
	if !strings.Contains(um, "Make sure the Docker daemon is running.") {
		t.Fatalf("UserMessage() missing advice: %s", um)
	}
	if !strings.Contains(um, "daemon not running") {
		t.Fatalf("UserMessage() missing cause: %s", um)
	}
}

func TestAsPulse(t *testing.T) {
	inner := New(ErrHistoryWrite, "state.put", errors.New("disk full"))
	wrapped := fmt.Errorf("outer: %w", inner)

	pe := AsPulse(wrapped)
	if pe == nil || pe.Code != ErrHistoryWrite {
		t.Fatalf("expected inner PulseError, got %+v", pe)
	}
	if AsPulse(errors.New("plain")) != nil {
		t.Fatal("plain errors must not convert")
	}
}
