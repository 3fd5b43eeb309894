package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/tui/client"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon and corpus status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				resp, err := c.Analyzer.GetStatus(ctx, &rpc.GetStatusRequest{})
				if err != nil {
					return err
				}
				if jsonOut {
					outputJSON(resp)
					return nil
				}
				printStatus(resp)
				return nil
			})
		},
	}
}

func printStatus(resp *rpc.GetStatusResponse) {
	fmt.Printf("Session:  %s\n", resp.Session)
	state := resp.State
	if resp.StateReason != "" {
		state += " (" + resp.StateReason + ")"
	}
	fmt.Printf("State:    %s\n", state)
	fmt.Printf("Uptime:   %s\n", (time.Duration(resp.UptimeMs) * time.Millisecond).Round(time.Second))
	fmt.Printf("Backend:  %s\n", resp.Backend)
	key := "not set"
	if resp.EnvKey {
		key = "from environment"
	}
	fmt.Printf("Provider: %s (key %s)\n", resp.Provider, key)
	if !resp.Loaded || resp.Stats == nil {
		fmt.Println("Export:   none loaded")
		return
	}
	fmt.Printf("Export:   %s\n", resp.Name)
	fmt.Printf("Messages: %d\n", resp.Stats.TotalMessages)
	fmt.Printf("Range:    %s\n", resp.Stats.DateRange)
	if len(resp.Stats.PerSender) == 0 {
		return
	}
	fmt.Println()
	width := 0
	for _, s := range resp.Stats.PerSender {
		width = max(width, len(s.Sender))
	}
	top := resp.Stats.PerSender[0].Messages
	for _, s := range resp.Stats.PerSender {
		fmt.Printf("  %-*s %6d %s\n", width, s.Sender, s.Messages, bar(s.Messages, top, 30))
	}
}

func participantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants",
		Short: "List the participants of the loaded export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				resp, err := c.Analyzer.ListParticipants(ctx, &rpc.ListParticipantsRequest{})
				if err != nil {
					return err
				}
				if jsonOut {
					outputJSON(resp)
					return nil
				}
				fmt.Println(strings.Join(resp.Participants, "\n"))
				return nil
			})
		},
	}
}
