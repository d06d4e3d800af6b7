package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/handball-tv/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ListResult contains data to be output
type ListResult struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Source      string         `json:"source,omitempty"`
	Filter      string         `json:"filter,omitempty"`
	Events      []*event.Event `json:"events"`
	EventCount  int            `json:"event_count"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *ListResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *ListResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *ListResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, evt := range result.Events {
		line := fmt.Sprintf("%s  %s", evt.Start.Format("2006-01-02 15:04"), evt.Summary)
		if evt.Channel != "" {
			line += fmt.Sprintf("  [%s]", evt.Channel)
		}
		fmt.Fprintln(w, line)

		if verbose {
			fmt.Fprintf(w, "    ID: %s\n", evt.ID)
			if evt.Description != "" {
				indented := strings.ReplaceAll(evt.Description, "\n", "\n    ")
				fmt.Fprintf(w, "    %s\n", indented)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d events\n", result.EventCount)
	return nil
}
