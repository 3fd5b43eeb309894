// Package launch finds or starts the daemon of a session.
package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/matheus3301/chatlens/internal/rpc"
)

// DaemonBinary is the daemon executable name.
const DaemonBinary = "chatlensd"

// Probe checks if a daemon is running and responsive on the socket.
func Probe(socketPath string) bool {
	conn, err := rpc.Dial(socketPath)
	if err != nil {
		return false
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = rpc.NewAnalyzerClient(conn).GetStatus(ctx, &rpc.GetStatusRequest{})
	return err == nil
}

// Start launches the daemon for sessionName next to the running
// executable, falling back to $PATH.
func Start(sessionName string) error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}
	bin := filepath.Join(filepath.Dir(executable), DaemonBinary)
	if _, err := os.Stat(bin); err != nil {
		bin = DaemonBinary
	}

	cmd := exec.Command(bin, "--session", sessionName)
	// Inherit stderr so daemon startup errors are visible.
	cmd.Stderr = os.Stderr
	return cmd.Start()
}

// Wait polls the daemon with a real gRPC health check (not just socket connect).
func Wait(socketPath string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if Probe(socketPath) {
			return true
		}
		time.Sleep(300 * time.Millisecond)
	}
	return false
}

// Ensure makes sure a daemon serves socketPath, starting one if needed.
// Progress is reported on stderr.
func Ensure(sessionName, socketPath string) error {
	if Probe(socketPath) {
		return nil
	}
	fmt.Fprintf(os.Stderr, "daemon not running for session %q, starting...\n", sessionName)
	if err := Start(sessionName); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}
	if !Wait(socketPath, 10*time.Second) {
		return fmt.Errorf("daemon did not become ready")
	}
	return nil
}
