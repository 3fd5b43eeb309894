package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/tui/client"
	"github.com/spf13/cobra"
)

func loadCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load a chat export into the daemon",
		Long:  `Reads a plain-text chat export and hands it to the daemon, replacing any export loaded before. Use "-" to read from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readExport(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = filepath.Base(args[0])
				if args[0] == "-" {
					name = "stdin"
				}
			}

			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				resp, err := c.Analyzer.LoadExport(ctx, &rpc.LoadExportRequest{Name: name, Text: text})
				if err != nil {
					return err
				}
				if jsonOut {
					outputJSON(resp)
					return nil
				}
				fmt.Printf("Loaded %d messages from %s\n", resp.Messages, resp.Name)
				fmt.Printf("Range:        %s\n", resp.Stats.DateRange)
				fmt.Printf("Participants: %s\n", strings.Join(resp.Participants, ", "))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name of the export (default: file name)")

	return cmd
}

func readExport(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	return string(data), nil
}
