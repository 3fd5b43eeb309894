package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/tui/client"
	"github.com/spf13/cobra"
)

func countCmd() *cobra.Command {
	var sender string

	cmd := &cobra.Command{
		Use:   "count <term>",
		Short: "Count how often each participant used a word or phrase",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				resp, err := c.Analyzer.CountWord(ctx, &rpc.CountWordRequest{Term: term, Sender: sender})
				if err != nil {
					return err
				}
				if jsonOut {
					outputJSON(resp)
					return nil
				}
				fmt.Printf("%q: %d total\n", resp.Term, resp.Total)
				width, top := 0, 0
				for _, sc := range resp.Counts {
					width = max(width, len(sc.Sender))
					top = max(top, sc.Count)
				}
				for _, sc := range resp.Counts {
					fmt.Printf("  %-*s %6d %s\n", width, sc.Sender, sc.Count, bar(sc.Count, top, 30))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "only count this participant's messages")

	return cmd
}

func topCmd() *cobra.Command {
	var sender string
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most used words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				resp, err := c.Analyzer.TopWords(ctx, &rpc.TopWordsRequest{Sender: sender, Limit: limit})
				if err != nil {
					return err
				}
				if jsonOut {
					outputJSON(resp)
					return nil
				}
				if len(resp.Words) == 0 {
					fmt.Println("No words found.")
					return nil
				}
				width := 0
				for _, w := range resp.Words {
					width = max(width, len(w.Word))
				}
				top := resp.Words[0].Count
				for i, w := range resp.Words {
					fmt.Printf("%3d. %-*s %6d %s\n", i+1, width, w.Word, w.Count, bar(w.Count, top, 30))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "only consider this participant's messages")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of words to show")

	return cmd
}
