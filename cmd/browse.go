package main

import (
	"bufio"
	"builtat/internal/client"
	"builtat/internal/config"
	"builtat/pkg/logger"
	"builtat/pkg/storage/filestore"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// readInput forwards every line of in to c until in is exhausted, then
// cancels the session.
func readInput(ctx context.Context, cancel context.CancelFunc, in io.Reader, c *client.Client, apple bool) {
	defer cancel()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !c.Post(ctx, client.ParseLine(scanner.Text(), apple)) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Warn(ctx, "could not read input", zap.Error(err))
	}
}

func browseCommand(cfg *config.Config) *cobra.Command {
	var (
		endpoint string
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Searches the subdomain list from the terminal and prints the chosen URL",
		Long: "Shows the cached subdomain list right away, refreshes it from the aggregator " +
			"and reads one command per line: text searches, 1-9 opens a result, an empty " +
			"line opens the first one, :clear resets the search, :esc and :k move focus.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			slot, err := filestore.New(cfg.Client.CacheDir, cfg.Client.CacheSlot)
			if err != nil {
				return fmt.Errorf("could not open cache slot: %w", err)
			}
			logger.Debug(ctx, "using cache slot", zap.String("path", slot.Path()))

			apple := runtime.GOOS == "darwin"
			view := client.NewTerminalView(cmd.OutOrStdout(), !noColor)
			c := client.New(client.Deps{
				View:      view,
				Navigator: view,
				Fetcher:   client.NewHTTPFetcher(&http.Client{Timeout: cfg.Client.FetchTimeout}, endpoint),
				Slot:      slot,
			}, client.Options{Apple: apple})

			// the input line is the search field
			c.Post(ctx, client.FocusChanged{Focused: true})
			go readInput(ctx, cancel, cmd.InOrStdin(), c, apple)

			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", cfg.Client.Endpoint, "Aggregator base URL")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
