package probe

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/f9-o/pulse/pkg/netutil"
)

func TestCheckTCPOpenPort(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	msg, err := CheckTCP(context.Background(), "127.0.0.1", port, 2*time.Second)
	if err != nil {
		t.Fatalf("expected pass, got error: %v", err)
	}
	if !strings.Contains(msg, "open") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestCheckTCPClosedPort(t *testing.T) {
	port, err := netutil.FreePort()
	if err != nil {
		t.Fatalf("free port: %v", err)
	}

	if _, err := CheckTCP(context.Background(), "127.0.0.1", port, time.Second); err == nil {
		t.Fatal("expected error for closed port")
	}
}

func TestCheckTCPPortRequired(t *testing.T) {
	if _, err := CheckTCP(context.Background(), "localhost", 0, time.Second); err == nil {
		t.Fatal("expected error for missing port")
	}
}

func TestCheckCmd(t *testing.T) {
	if _, err := CheckCmd(context.Background(), "true", 2*time.Second); err != nil {
		t.Fatalf("expected pass for exit 0, got: %v", err)
	}

	if _, err := CheckCmd(context.Background(), "false", 2*time.Second); err == nil {
		t.Fatal("expected error for exit 1")
	}

	if _, err := CheckCmd(context.Background(), "", 2*time.Second); err == nil {
		t.Fatal("expected error for empty command")
	}
}
