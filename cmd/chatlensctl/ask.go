package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/tui/client"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// apiKeyEnv lets scripts pass a key without a flag or prompt.
const apiKeyEnv = "CHATLENS_API_KEY"

func askCmd() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant a question about the conversation",
		Long:  `Retrieves the messages most relevant to the question and asks the configured language model to answer from them.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				key, err := resolveKey(ctx, c, apiKey)
				if err != nil {
					return err
				}
				resp, err := c.Analyzer.Ask(ctx, &rpc.AskRequest{Question: question, APIKey: key})
				if err != nil {
					return err
				}
				if jsonOut {
					outputJSON(resp)
					return nil
				}
				fmt.Println(resp.Answer)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "language model API key (default: $"+apiKeyEnv+", then the daemon's own)")

	return cmd
}

func summaryCmd() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) error {
				key, err := resolveKey(ctx, c, apiKey)
				if err != nil {
					return err
				}
				resp, err := c.Analyzer.Summarize(ctx, &rpc.SummarizeRequest{APIKey: key})
				if err != nil {
					return err
				}
				if jsonOut {
					outputJSON(resp)
					return nil
				}
				fmt.Println(resp.Summary)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "language model API key (default: $"+apiKeyEnv+", then the daemon's own)")

	return cmd
}

// resolveKey picks the key to send with a request. An empty result means
// the daemon's own credential is used. When neither side has one and stdin
// is a terminal the user is prompted.
func resolveKey(ctx context.Context, c *client.Client, flagKey string) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	if k := os.Getenv(apiKeyEnv); k != "" {
		return k, nil
	}
	st, err := c.Analyzer.GetStatus(ctx, &rpc.GetStatusRequest{})
	if err != nil {
		return "", err
	}
	if st.EnvKey || !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}

	fmt.Fprintf(os.Stderr, "%s API key: ", st.Provider)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read API key: %w", err)
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", errors.New("no API key given")
	}
	return key, nil
}
