package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/handball-tv/internal/event"
	"github.com/pfrederiksen/handball-tv/internal/filter"
	"github.com/pfrederiksen/handball-tv/internal/logger"
	"github.com/pfrederiksen/handball-tv/internal/storage"
)

func listCmd() *cobra.Command {
	var (
		flagInput        string
		flagFormat       string
		flagSort         string
		flagCached       bool
		flagChannels     []string
		flagTeams        []string
		flagCompetitions []string
		flagRange        string
		flagWeekends     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List extracted broadcast events",
		Long: `List runs the extraction pipeline and prints the events it found,
without encoding them. Useful for checking what the parser sees.

With --cached the events from the last refresh snapshot are printed
instead of fetching the page.

Filter flags narrow the output:

  handball-tv list --channel DR1 --weekends
  handball-tv list --team Aalborg --range 15/1-31/1
  handball-tv list --competition Herreligaen --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := OutputFormat(strings.ToLower(flagFormat))
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
			}
			order := SortOrder(strings.ToLower(flagSort))
			if order != SortByStart && order != SortByChannel && order != SortBySummary {
				return fmt.Errorf("invalid sort order: %s (must be 'start', 'channel' or 'summary')", flagSort)
			}

			f := &filter.Filter{
				Channels:     flagChannels,
				Teams:        flagTeams,
				Competitions: flagCompetitions,
				WeekendsOnly: flagWeekends,
			}
			if flagRange != "" {
				from, to, err := filter.ParseDateRange(flagRange)
				if err != nil {
					return err
				}
				f.From, f.To = from, to
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var events []*event.Event
			source := "live"
			if flagCached {
				store, err := storage.New(cfg.DataDir)
				if err != nil {
					return fmt.Errorf("opening data dir: %w", err)
				}
				snap, err := store.LoadSnapshot()
				if err != nil {
					return fmt.Errorf("loading snapshot: %w", err)
				}
				if len(snap.Events) == 0 {
					return fmt.Errorf("no cached snapshot in %s; run serve or generate first", cfg.DataDir)
				}
				events = snap.Events
				source = "cache"
			} else {
				res, err := collectResult(context.Background(), cfg, flagInput)
				if err != nil {
					return err
				}
				events = res.Events
				if flagInput != "" {
					source = flagInput
				}
			}

			result := &ListResult{
				GeneratedAt: time.Now().UTC(),
				Source:      source,
			}
			if !f.IsEmpty() {
				logger.Debug("applying filter", logger.Fields{"criteria": f.String()})
				events = f.Apply(events)
				result.Filter = f.String()
			}
			sortEvents(events, order)

			result.Events = events
			result.EventCount = len(events)
			return WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose)
		},
	}

	cmd.Flags().StringVar(&flagInput, "input", "", "Read a saved HTML page instead of fetching ('-' for stdin)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "start", "Sort order: start, channel or summary")
	cmd.Flags().BoolVar(&flagCached, "cached", false, "Print events from the last snapshot instead of fetching")
	cmd.Flags().StringArrayVar(&flagChannels, "channel", nil, "Only show this channel (repeatable)")
	cmd.Flags().StringArrayVar(&flagTeams, "team", nil, "Only show matches involving this team (repeatable)")
	cmd.Flags().StringArrayVar(&flagCompetitions, "competition", nil, "Only show this competition (repeatable)")
	cmd.Flags().StringVar(&flagRange, "range", "", "Only show this date range, e.g. '15/1-31/1' or '2026-01-15'")
	cmd.Flags().BoolVar(&flagWeekends, "weekends", false, "Only show weekend broadcasts")

	return cmd
}
