// Package probe: TCP and command probe implementations.
package probe

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/f9-o/pulse/pkg/netutil"
)

// CheckTCP dials host:port and passes if the connection succeeds.
// Host defaults to localhost, matching how the suite probes services.
func CheckTCP(ctx context.Context, host string, port int, timeout time.Duration) (string, error) {
	if port == 0 {
		return "", fmt.Errorf("tcp check: port is required")
	}
	if host == "" {
		host = "localhost"
	}

	if err := netutil.ProbeTCP(ctx, host, port, timeout); err != nil {
		return fmt.Sprintf("Port %d unreachable", port), err
	}
	return fmt.Sprintf("Port %d open on %s", port, host), nil
}

// CheckCmd runs a shell command locally and passes if it exits 0.
func CheckCmd(ctx context.Context, command string, timeout time.Duration) (string, error) {
	if command == "" {
		return "", fmt.Errorf("cmd check: command is required")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Execute via shell to support pipes and compound commands
	cmd := exec.CommandContext(ctx, "sh", "-c", command) //nolint:gosec
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "Command failed", fmt.Errorf("cmd probe %q exited non-zero: %w (output: %s)", command, err, string(out))
	}
	return "Command exited 0", nil
}
