package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/handball-tv/internal/calendar"
	"github.com/pfrederiksen/handball-tv/internal/config"
	"github.com/pfrederiksen/handball-tv/internal/logger"
	"github.com/pfrederiksen/handball-tv/internal/schedule"
	"github.com/pfrederiksen/handball-tv/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagVerbose bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handball-tv",
		Short: "Danish handball TV schedule as an iCalendar feed",
		Long: `handball-tv turns the TV schedule published on danskhaandbold.dk into an
iCalendar document that calendar apps can subscribe to.

The schedule page is rendered in a headless browser, flattened to text
lines, parsed into broadcast events and encoded as RFC 5545.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logger.LevelInfo
			if flagVerbose {
				level = logger.LevelDebug
			}
			logger.SetDefault(logger.New(level, os.Stderr))
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file (created on first use)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(generateCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(validateCmd())

	return cmd
}

// loadConfig resolves the effective configuration for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// collectLines produces normalized text lines from the configured source:
// a saved HTML file, stdin ("-"), or a live render of the schedule page.
func collectLines(ctx context.Context, cfg *config.Config, input string) ([]string, error) {
	switch input {
	case "":
		sc := scraper.New(cfg.SourceURL, cfg.UserAgent, cfg.FetchTimeout())
		logger.Debug("fetching schedule", logger.Fields{"url": sc.URL()})
		return sc.FetchLines(ctx)
	case "-":
		return scraper.ExtractLines(os.Stdin)
	default:
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close() // nolint:errcheck
		return scraper.ExtractLines(f)
	}
}

// collectResult runs the front half of the pipeline: lines in, parsed
// events out. A run that extracts nothing at all is an error.
func collectResult(ctx context.Context, cfg *config.Config, input string) (*schedule.Result, error) {
	lines, err := collectLines(ctx, cfg, input)
	if err != nil {
		return nil, fmt.Errorf("collecting schedule text: %w", err)
	}

	res, err := schedule.Parse(lines, cfg.ScheduleOptions())
	if err != nil {
		if errors.Is(err, schedule.ErrNoEvents) && res != nil {
			return nil, fmt.Errorf("%w (%d lines scanned, %d date headers, %d time headers, %d blocks)",
				err, res.Stats.Lines, res.Stats.DateHeaders, res.Stats.TimeHeaders, res.Stats.Blocks)
		}
		return nil, err
	}

	logger.Debug("parsed schedule", logger.Fields{
		"events":     len(res.Events),
		"lines":      res.Stats.Lines,
		"duplicates": res.Stats.Duplicates,
	})

	return res, nil
}

func calendarOptions(cfg *config.Config) calendar.Options {
	return calendar.Options{
		Name:     cfg.CalendarName,
		Timezone: calendar.Copenhagen,
	}
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
