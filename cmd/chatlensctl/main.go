package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matheus3301/chatlens/internal/launch"
	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/session"
	"github.com/matheus3301/chatlens/internal/tui/client"
	"github.com/spf13/cobra"
)

var version = "dev"

// Global flags shared by every subcommand.
var (
	sessionFlag string
	jsonOut     bool
	timeout     time.Duration
	autoStart   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "chatlensctl",
		Short:         "chatlens control - query a chat export loaded into the chatlens daemon",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&sessionFlag, "session", "", "session name (overrides config default)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 90*time.Second, "deadline for each daemon call")
	rootCmd.PersistentFlags().BoolVar(&autoStart, "start", true, "start the session daemon if it is not running")

	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(participantsCmd())
	rootCmd.AddCommand(countCmd())
	rootCmd.AddCommand(topCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(sessionsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", rpc.Describe(err))
		os.Exit(1)
	}
}

// resolveSession applies the --session flag over the config default.
func resolveSession() (string, error) {
	name := session.Resolve(sessionFlag)
	if err := session.ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// connect returns a client for the session daemon, starting the daemon
// first when --start is set.
func connect() (*client.Client, error) {
	name, err := resolveSession()
	if err != nil {
		return nil, err
	}
	socketPath := session.SocketPath(name)
	if autoStart {
		if err := launch.Ensure(name, socketPath); err != nil {
			return nil, err
		}
	}
	c, err := client.New(socketPath)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to daemon for session %q: %w", name, err)
	}
	return c, nil
}

// withClient runs fn with a connected client and a per-call deadline.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c *client.Client) error) error {
	c, err := connect()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	return fn(ctx, c)
}

func outputJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "json encode error: %v\n", err)
	}
}

// bar renders n relative to max as a run of block characters.
func bar(n, max, width int) string {
	if max <= 0 || n <= 0 {
		return ""
	}
	w := n * width / max
	if w == 0 {
		w = 1
	}
	return strings.Repeat("█", w)
}
