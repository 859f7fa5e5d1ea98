// Package probe: static (no-I/O) checks.
package probe

import (
	"fmt"

	v1 "github.com/f9-o/pulse/api/v1"
)

// CheckStatic performs no work and reports the configured message. It backs
// placeholder suite entries whose real probe does not exist yet; the default
// embeddings and chat checks are static.
func CheckStatic(spec v1.CheckSpec) (string, error) {
	if spec.Message == "" {
		return "", fmt.Errorf("static check: message is required")
	}
	if spec.Status == v1.StatusFailed {
		return spec.Message, fmt.Errorf("static check %q configured to fail", spec.Name)
	}
	return spec.Message, nil
}
