package suite

import (
	"time"

	v1 "github.com/f9-o/pulse/api/v1"
)

// ApplyTimeout fills in the timeout for every check that does not set one.
func ApplyTimeout(spec *v1.SuiteSpec, d time.Duration) {
	if d == 0 {
		return
	}
	for i := range spec.Checks {
		if spec.Checks[i].Timeout == 0 {
			spec.Checks[i].Timeout = d
		}
	}
}
