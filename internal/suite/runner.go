// Package suite executes an ordered list of smoke checks and aggregates results.
package suite

import (
	"context"
	"time"

	v1 "github.com/f9-o/pulse/api/v1"
	"github.com/f9-o/pulse/internal/core/logger"
	"github.com/f9-o/pulse/internal/probe"
)

// StartFunc is invoked before each check begins, for live reporting.
type StartFunc func(index, total int, chk v1.CheckSpec)

// ResultFunc is invoked after each check completes, for live reporting.
type ResultFunc func(index, total int, res v1.CheckResult)

// Runner executes a SuiteSpec sequentially.
type Runner struct {
	prober   *probe.Prober
	log      *logger.Logger
	onStart  StartFunc
	onResult ResultFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithStartFunc registers a callback fired as each check starts.
func WithStartFunc(fn StartFunc) Option {
	return func(r *Runner) { r.onStart = fn }
}

// WithResultFunc registers a callback fired after each check.
func WithResultFunc(fn ResultFunc) Option {
	return func(r *Runner) { r.onResult = fn }
}

// New constructs a Runner.
func New(prober *probe.Prober, log *logger.Logger, opts ...Option) *Runner {
	r := &Runner{prober: prober, log: log}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run executes every check in order. A failing check never stops the run;
// the only early-out is context cancellation, which records the remaining
// checks as skipped so the report still covers the whole suite.
func (r *Runner) Run(ctx context.Context, spec v1.SuiteSpec) v1.SuiteReport {
	report := v1.SuiteReport{
		Suite:   spec.Name,
		Started: time.Now().UTC(),
		Results: make([]v1.CheckResult, 0, len(spec.Checks)),
	}

	total := len(spec.Checks)
	for i, chk := range spec.Checks {
		if r.onStart != nil {
			r.onStart(i, total, chk)
		}

		var res v1.CheckResult
		if ctx.Err() != nil {
			res = v1.CheckResult{
				Name:    chk.Name,
				Kind:    chk.Kind,
				Status:  v1.StatusSkipped,
				Message: "run cancelled",
			}
		} else {
			res = r.prober.Run(ctx, chk)
		}

		report.Results = append(report.Results, res)
		switch res.Status {
		case v1.StatusOK:
			report.OKCount++
		case v1.StatusFailed:
			report.Failed++
		case v1.StatusSkipped:
			report.Skipped++
		}

		if r.onResult != nil {
			r.onResult(i, total, res)
		}
	}

	report.Elapsed = time.Since(report.Started)
	r.log.Info("suite finished",
		"suite", spec.Name,
		"ok", report.OKCount,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"elapsed", report.Elapsed,
	)
	return report
}
