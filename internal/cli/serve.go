package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/handball-tv/internal/schedule"
	"github.com/pfrederiksen/handball-tv/internal/server"
	"github.com/pfrederiksen/handball-tv/internal/storage"
)

func serveCmd() *cobra.Command {
	var flagListen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the feed over HTTP with periodic refresh",
		Long: `Serve generates the calendar, exposes it on /tv-program.ics and re-runs
the pipeline on the configured cron schedule. /health reports run
statistics. A failed refresh keeps the previous document online.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if flagListen != "" {
				cfg.Listen = flagListen
			}

			store, err := storage.New(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("opening data dir: %w", err)
			}

			refresh := func(ctx context.Context) (*schedule.Result, error) {
				return collectResult(ctx, cfg, "")
			}

			srv := server.New(server.Config{
				Listen:   cfg.Listen,
				Refresh:  refresh,
				Store:    store,
				Calendar: calendarOptions(cfg),
				Timeout:  cfg.FetchTimeout() + 30*time.Second,
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx, cfg.RefreshCron)
		},
	}

	cmd.Flags().StringVar(&flagListen, "listen", "", "HTTP listen address (overrides config if set)")

	return cmd
}
