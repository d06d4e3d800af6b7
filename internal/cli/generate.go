package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/handball-tv/internal/calendar"
	"github.com/pfrederiksen/handball-tv/internal/logger"
	"github.com/pfrederiksen/handball-tv/internal/storage"
)

func generateCmd() *cobra.Command {
	var (
		flagInput  string
		flagOutput string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the iCalendar document",
		Long: `Generate fetches the schedule page (or reads a saved copy), parses it
and writes the encoded calendar document.

Examples:
  handball-tv generate
  handball-tv generate --output docs/tv-program.ics
  handball-tv generate --input page.html
  cat page.html | handball-tv generate --input -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			res, err := collectResult(context.Background(), cfg, flagInput)
			if err != nil {
				return err
			}

			doc := calendar.Encode(res.Events, calendarOptions(cfg))

			if flagOutput == "" || flagOutput == "-" {
				fmt.Fprint(cmd.OutOrStdout(), doc)
				return nil
			}

			if err := storage.WriteFile(flagOutput, []byte(doc)); err != nil {
				return fmt.Errorf("writing %s: %w", flagOutput, err)
			}
			logger.Info("calendar written", logger.Fields{
				"path":   flagOutput,
				"events": len(res.Events),
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&flagInput, "input", "", "Read a saved HTML page instead of fetching ('-' for stdin)")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Write the document to this path instead of stdout")

	return cmd
}
