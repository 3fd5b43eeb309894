package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func watchCmd() *cobra.Command {
	var namespace string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream daemon events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stream, err := c.Analyzer.WatchEvents(ctx, &rpc.WatchEventsRequest{Namespace: namespace})
			if err != nil {
				return err
			}
			for {
				ev, err := stream.Recv()
				if err != nil {
					if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled || ctx.Err() != nil {
						return nil
					}
					return err
				}
				if jsonOut {
					outputJSON(ev)
					continue
				}
				at := time.UnixMilli(ev.OccurredAtMs).Format(time.TimeOnly)
				fmt.Printf("%s %-22s %s\n", at, ev.Kind, ev.Detail)
			}
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", `only show events whose kind starts with this prefix, e.g. "query."`)

	return cmd
}
