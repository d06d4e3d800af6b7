package cli

import (
	"fmt"
	"os"

	ical "github.com/arran4/golang-ical"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.ics>",
		Short: "Parse a generated calendar and report its contents",
		Long: `Validate parses an .ics file with an independent iCalendar parser and
reports the event count and time range. It fails on unparseable input,
an empty calendar or duplicate UIDs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close() // nolint:errcheck

			cal, err := ical.ParseCalendar(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			events := cal.Events()
			if len(events) == 0 {
				return fmt.Errorf("%s contains no events", path)
			}

			seen := make(map[string]bool, len(events))
			var first, last string
			for _, ve := range events {
				uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
				if uidProp == nil || uidProp.Value == "" {
					return fmt.Errorf("%s: event without UID", path)
				}
				if seen[uidProp.Value] {
					return fmt.Errorf("%s: duplicate UID %s", path, uidProp.Value)
				}
				seen[uidProp.Value] = true

				dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
				if dtStart == nil || dtStart.Value == "" {
					return fmt.Errorf("%s: event %s has no DTSTART", path, uidProp.Value)
				}
				// The local-time layout sorts lexically.
				if first == "" || dtStart.Value < first {
					first = dtStart.Value
				}
				if dtStart.Value > last {
					last = dtStart.Value
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d events, %s .. %s, UIDs unique\n",
				path, len(events), first, last)
			return nil
		},
	}
}
