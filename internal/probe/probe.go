// Package probe executes individual smoke checks against a target service.
package probe

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/f9-o/pulse/api/v1"
	"github.com/f9-o/pulse/internal/core/logger"
	"github.com/f9-o/pulse/pkg/errs"
)

// DefaultTimeout is used when a check spec carries no timeout.
const DefaultTimeout = 5 * time.Second

// Prober dispatches a CheckSpec to its kind-specific implementation.
type Prober struct {
	log    *logger.Logger
	docker ContainerInspector // lazily constructed unless injected
}

// Option configures a Prober.
type Option func(*Prober)

// WithContainerInspector injects a Docker inspector, used by tests.
func WithContainerInspector(ci ContainerInspector) Option {
	return func(p *Prober) { p.docker = ci }
}

// New constructs a Prober.
func New(log *logger.Logger, opts ...Option) *Prober {
	p := &Prober{log: log}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run executes a single check and returns its result. Failures are folded
// into the result; Run itself never returns an error, so a suite can keep
// going regardless of individual outcomes.
func (p *Prober) Run(ctx context.Context, spec v1.CheckSpec) v1.CheckResult {
	timeout := spec.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	res := v1.CheckResult{Name: spec.Name, Kind: spec.Kind}
	start := time.Now()

	msg, err := p.dispatch(ctx, spec, timeout)
	res.Duration = time.Since(start)

	switch {
	case err != nil:
		res.Status = v1.StatusFailed
		res.Message = msg
		res.Err = err.Error()
		if pe := errs.AsPulse(err); pe != nil {
			res.Advice = pe.Advice
		}
		p.log.Debug("check failed", "check", spec.Name, "kind", spec.Kind, "err", err)
	case spec.Kind == v1.KindStatic && spec.Status == v1.StatusSkipped:
		res.Status = v1.StatusSkipped
		res.Message = msg
	default:
		res.Status = v1.StatusOK
		res.Message = msg
		p.log.Debug("check passed", "check", spec.Name, "kind", spec.Kind, "took", res.Duration)
	}
	return res
}

// dispatch routes the spec to its probe. For tcp, cmd, and container kinds
// the retry loop lives here; http kinds delegate retries to the HTTP client.
func (p *Prober) dispatch(ctx context.Context, spec v1.CheckSpec, timeout time.Duration) (string, error) {
	switch spec.Kind {
	case v1.KindHTTP:
		return CheckHTTP(ctx, spec.URL, spec.ExpectStatus, timeout, spec.Retries)
	case v1.KindOllamaVersion:
		return CheckOllamaVersion(ctx, spec.URL, timeout, spec.Retries)
	case v1.KindTCP:
		return p.withRetries(ctx, spec.Retries, func() (string, error) {
			return CheckTCP(ctx, spec.Host, spec.Port, timeout)
		})
	case v1.KindCmd:
		return p.withRetries(ctx, spec.Retries, func() (string, error) {
			return CheckCmd(ctx, spec.Command, timeout)
		})
	case v1.KindContainer:
		return p.withRetries(ctx, spec.Retries, func() (string, error) {
			return p.checkContainer(ctx, spec, timeout)
		})
	case v1.KindStatic:
		return CheckStatic(spec)
	default:
		return "", errs.Newf(errs.ErrCheckUnknownKind, "probe.dispatch", "unknown check kind %q", spec.Kind).
			WithCheck(spec.Name)
	}
}

// withRetries runs fn up to retries+1 times. Retries default to zero:
// a check is a single attempt unless its spec opts in.
func (p *Prober) withRetries(ctx context.Context, retries int, fn func() (string, error)) (string, error) {
	var (
		msg     string
		lastErr error
	)
	for attempt := 0; attempt <= retries; attempt++ {
		select {
		case <-ctx.Done():
			return msg, ctx.Err()
		default:
		}

		msg, lastErr = fn()
		if lastErr == nil {
			return msg, nil
		}
		if attempt < retries {
			p.log.Debug("check attempt failed", "attempt", attempt+1, "of", retries+1, "err", lastErr)
		}
	}
	if retries > 0 {
		return msg, fmt.Errorf("after %d attempts: %w", retries+1, lastErr)
	}
	return msg, lastErr
}
