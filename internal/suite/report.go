// Package suite: report rendering and history conversion.
package suite

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	v1 "github.com/f9-o/pulse/api/v1"
	"github.com/f9-o/pulse/pkg/pprint"
)

// PrintResult renders one check result as a styled status line.
func PrintResult(res v1.CheckResult) {
	switch res.Status {
	case v1.StatusOK:
		pprint.Success("%s — %s", res.Name, res.Message)
	case v1.StatusSkipped:
		pprint.Skip("%s — %s", res.Name, res.Message)
	default:
		msg := res.Message
		if msg == "" {
			msg = res.Err
		}
		pprint.Fail("%s — %s", res.Name, msg)
		if res.Err != "" && res.Message != "" {
			pprint.Info(res.Err)
		}
		if res.Advice != "" {
			pprint.Info("→ %s", res.Advice)
		}
	}
}

// PrintSummary renders the end-of-run counters.
func PrintSummary(report v1.SuiteReport) {
	fmt.Println()
	pprint.Rule(60)
	line := fmt.Sprintf("%d ok, %d failed, %d skipped in %s",
		report.OKCount, report.Failed, report.Skipped, report.Elapsed.Round(time.Millisecond))
	if report.Passed() {
		pprint.Success("%s", line)
	} else {
		pprint.Fail("%s", line)
	}
}

// WriteJSON emits the machine-readable report.
func WriteJSON(w io.Writer, report v1.SuiteReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// ToRecord converts a report into a persistable history record.
func ToRecord(report v1.SuiteReport) v1.RunRecord {
	return v1.RunRecord{
		ID:      uuid.NewString(),
		Suite:   report.Suite,
		Started: report.Started,
		Elapsed: report.Elapsed,
		OKCount: report.OKCount,
		Failed:  report.Failed,
		Skipped: report.Skipped,
		Results: report.Results,
	}
}
