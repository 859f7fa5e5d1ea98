package probe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	v1 "github.com/f9-o/pulse/api/v1"
	"github.com/f9-o/pulse/internal/core/logger"
	"github.com/f9-o/pulse/pkg/errs"
)

func TestRunStaticCheck(t *testing.T) {
	p := New(logger.Discard())

	res := p.Run(context.Background(), v1.CheckSpec{
		Name:    "embeddings",
		Kind:    v1.KindStatic,
		Message: "Embeddings generated successfully",
	})

	if res.Status != v1.StatusOK {
		t.Fatalf("expected ok, got %s (%s)", res.Status, res.Err)
	}
	if res.Message != "Embeddings generated successfully" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
}

func TestRunStaticCheckSkipped(t *testing.T) {
	p := New(logger.Discard())

	res := p.Run(context.Background(), v1.CheckSpec{
		Name:    "chat",
		Kind:    v1.KindStatic,
		Status:  v1.StatusSkipped,
		Message: "not implemented yet",
	})

	if res.Status != v1.StatusSkipped {
		t.Fatalf("expected skipped, got %s", res.Status)
	}
}

func TestRunUnknownKind(t *testing.T) {
	p := New(logger.Discard())

	res := p.Run(context.Background(), v1.CheckSpec{Name: "mystery", Kind: "teleport"})
	if res.Status != v1.StatusFailed {
		t.Fatalf("expected failed, got %s", res.Status)
	}
	if !strings.Contains(res.Err, string(errs.ErrCheckUnknownKind)) {
		t.Fatalf("expected %s in error, got %q", errs.ErrCheckUnknownKind, res.Err)
	}
}

// fakeInspector implements ContainerInspector for tests.
type fakeInspector struct {
	msg   string
	err   error
	calls int
}

func (f *fakeInspector) ContainerRunning(ctx context.Context, name string, port int) (string, error) {
	f.calls++
	return f.msg, f.err
}

// Remediation advice attached to a structured error must survive onto the
// result so the reporter can show it next to the failure.
func TestRunCarriesAdviceToResult(t *testing.T) {
	fake := &fakeInspector{
		msg: "No Docker connection",
		err: errs.New(errs.ErrDockerConnect, "probe.container.connect", errors.New("dial unix: no such file")).
			WithAdvice("Make sure the Docker daemon is running."),
	}
	p := New(logger.Discard(), WithContainerInspector(fake))

	res := p.Run(context.Background(), v1.CheckSpec{
		Name:      "rag-container",
		Kind:      v1.KindContainer,
		Container: "rag-service",
	})

	if res.Status != v1.StatusFailed {
		t.Fatalf("expected failed, got %s", res.Status)
	}
	if res.Advice != "Make sure the Docker daemon is running." {
		t.Fatalf("expected advice on result, got %q", res.Advice)
	}
}

func TestRunContainerCheck(t *testing.T) {
	fake := &fakeInspector{msg: "Container rag-service running"}
	p := New(logger.Discard(), WithContainerInspector(fake))

	res := p.Run(context.Background(), v1.CheckSpec{
		Name:      "rag-container",
		Kind:      v1.KindContainer,
		Container: "rag-service",
	})

	if res.Status != v1.StatusOK {
		t.Fatalf("expected ok, got %s (%s)", res.Status, res.Err)
	}
	if fake.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fake.calls)
	}
}

func TestRunRetriesOptIn(t *testing.T) {
	fake := &fakeInspector{msg: "Container down", err: errors.New("not running")}
	p := New(logger.Discard(), WithContainerInspector(fake))

	res := p.Run(context.Background(), v1.CheckSpec{
		Name:      "rag-container",
		Kind:      v1.KindContainer,
		Container: "rag-service",
		Retries:   2,
		Timeout:   time.Second,
	})

	if res.Status != v1.StatusFailed {
		t.Fatalf("expected failed, got %s", res.Status)
	}
	if fake.calls != 3 {
		t.Fatalf("expected 3 attempts (1 + 2 retries), got %d", fake.calls)
	}
	if !strings.Contains(res.Err, "after 3 attempts") {
		t.Fatalf("expected attempt count in error, got %q", res.Err)
	}
}
