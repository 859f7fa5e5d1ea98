// Package v1 defines the public data types shared across all Pulse layers.
package v1

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Status enumerations
// ─────────────────────────────────────────────────────────────────────────────

// CheckStatus is the tri-state outcome of a single smoke check.
type CheckStatus string

const (
	StatusOK      CheckStatus = "ok"
	StatusFailed  CheckStatus = "failed"
	StatusSkipped CheckStatus = "skipped"
)

// CheckKind identifies the probe implementation backing a check.
type CheckKind string

const (
	KindHTTP          CheckKind = "http"
	KindTCP           CheckKind = "tcp"
	KindCmd           CheckKind = "cmd"
	KindOllamaVersion CheckKind = "ollama-version"
	KindContainer     CheckKind = "container"
	KindStatic        CheckKind = "static"
)

// ─────────────────────────────────────────────────────────────────────────────
// Specification types (derived from pulse.yaml)
// ─────────────────────────────────────────────────────────────────────────────

// CheckSpec is the declarative definition of a single smoke check.
type CheckSpec struct {
	Name string    `yaml:"name" mapstructure:"name"`
	Kind CheckKind `yaml:"kind" mapstructure:"kind"`

	// http / ollama-version
	URL          string `yaml:"url"           mapstructure:"url"`
	ExpectStatus int    `yaml:"expect_status" mapstructure:"expect_status"` // 0 = any response passes

	// tcp / container
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`

	// cmd
	Command string `yaml:"command" mapstructure:"command"`

	// container
	Container string `yaml:"container" mapstructure:"container"`

	// static
	Message string      `yaml:"message" mapstructure:"message"`
	Status  CheckStatus `yaml:"status"  mapstructure:"status"` // static checks only; default ok

	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Retries int           `yaml:"retries" mapstructure:"retries"` // extra attempts; default 0 (single shot)
}

// SuiteSpec is an ordered list of checks executed sequentially.
type SuiteSpec struct {
	Name   string      `yaml:"name"   mapstructure:"name"`
	Checks []CheckSpec `yaml:"checks" mapstructure:"checks"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Result types
// ─────────────────────────────────────────────────────────────────────────────

// CheckResult is the recorded outcome of one executed check.
type CheckResult struct {
	Name     string        `json:"name"`
	Kind     CheckKind     `json:"kind"`
	Status   CheckStatus   `json:"status"`
	Message  string        `json:"message"`
	Err      string        `json:"error,omitempty"`
	Advice   string        `json:"advice,omitempty"`
	Duration time.Duration `json:"duration"`
}

// SuiteReport aggregates the results of one full suite run.
type SuiteReport struct {
	Suite   string        `json:"suite"`
	Started time.Time     `json:"started"`
	Elapsed time.Duration `json:"elapsed"`
	Results []CheckResult `json:"results"`
	OKCount int           `json:"ok"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
}

// Passed reports whether no check failed. Skipped checks do not count
// against a passing run.
func (r SuiteReport) Passed() bool {
	return r.Failed == 0
}

// RunRecord is the persisted history entry for one suite run.
type RunRecord struct {
	ID      string        `json:"id"`
	Suite   string        `json:"suite"`
	Started time.Time     `json:"started"`
	Elapsed time.Duration `json:"elapsed"`
	OKCount int           `json:"ok"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	Results []CheckResult `json:"results"`
}
