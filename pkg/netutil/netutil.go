// Package netutil provides network utility helpers used across Pulse.
package netutil

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"time"
)

// checkNameRegex enforces DNS-label-safe check names.
var checkNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]{0,62}$`)

// IsValidCheckName returns true if name is a DNS-label-safe check name.
func IsValidCheckName(name string) bool {
	return checkNameRegex.MatchString(name)
}

// IsValidPort returns true if port is in the valid TCP range.
func IsValidPort(port int) bool {
	return port >= 1 && port <= 65535
}

// ProbeTCP dials host:port and returns nil if successful within the timeout.
func ProbeTCP(ctx context.Context, host string, port int, timeout time.Duration) error {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("tcp probe to %s failed: %w", addr, err)
	}
	conn.Close()
	return nil
}

// FreePort finds an available TCP port on localhost.
func FreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// SplitHostPort wraps net.SplitHostPort with a default port fallback.
func SplitHostPort(addr string, defaultPort int) (host string, port string, err error) {
	host, port, err = net.SplitHostPort(addr)
	if err != nil {
		// No port in addr — treat entire string as host
		return addr, fmt.Sprintf("%d", defaultPort), nil
	}
	return host, port, nil
}
