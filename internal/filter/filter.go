// Package filter narrows a parsed broadcast list down to the events a
// viewer actually cares about:
//
//   - Date windows (from/to, inclusive)
//   - Channels (exact match against canonical channel names, case-insensitive)
//   - Teams (substring match against the summary, case-insensitive)
//   - Competitions (substring match against the description, case-insensitive)
//   - Weekends only (Saturday/Sunday)
//
// Example usage:
//
//	// Weekend matches on DR1
//	f := filter.New()
//	f.WeekendsOnly = true
//	f.Channels = []string{"DR1"}
//
//	filtered := f.Apply(events)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/handball-tv/internal/event"
)

// Filter represents broadcast filtering criteria. The zero value matches
// every event.
type Filter struct {
	// Date window, inclusive on both ends.
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`

	// Channel filtering (case-insensitive exact match)
	Channels []string `json:"channels,omitempty"`

	// Team filtering (case-insensitive substring match against the summary)
	Teams []string `json:"teams,omitempty"`

	// Competition filtering (case-insensitive substring match against the
	// description, e.g. "EM" or "Herreligaen")
	Competitions []string `json:"competitions,omitempty"`

	// Weekend-only filtering (Saturday/Sunday)
	WeekendsOnly bool `json:"weekends_only,omitempty"`
}

// New creates an empty filter that matches all events until criteria are
// added.
func New() *Filter {
	return &Filter{}
}

// IsEmpty reports whether the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.From == nil &&
		f.To == nil &&
		len(f.Channels) == 0 &&
		len(f.Teams) == 0 &&
		len(f.Competitions) == 0 &&
		!f.WeekendsOnly
}

// Matches reports whether an event passes all active criteria. An empty
// filter matches all events.
//
// Start times are wall-clock values, so the date window and the weekday
// check compare against the broadcast's local day, not a converted instant.
func (f *Filter) Matches(evt *event.Event) bool {
	if f.IsEmpty() {
		return true
	}

	if f.From != nil && evt.Start.Before(*f.From) {
		return false
	}
	if f.To != nil && evt.Start.After(*f.To) {
		return false
	}

	if f.WeekendsOnly {
		weekday := evt.Start.Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			return false
		}
	}

	if len(f.Channels) > 0 {
		matched := false
		for _, channel := range f.Channels {
			if strings.EqualFold(evt.Channel, channel) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Teams) > 0 {
		matched := false
		summaryLower := strings.ToLower(evt.Summary)
		for _, team := range f.Teams {
			if strings.Contains(summaryLower, strings.ToLower(team)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Competitions) > 0 {
		matched := false
		descriptionLower := strings.ToLower(evt.Description)
		for _, competition := range f.Competitions {
			if strings.Contains(descriptionLower, strings.ToLower(competition)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns the events that match all active criteria. An empty filter
// returns the original slice unchanged.
func (f *Filter) Apply(events []*event.Event) []*event.Event {
	if f.IsEmpty() {
		return events
	}

	var filtered []*event.Event
	for _, evt := range events {
		if f.Matches(evt) {
			filtered = append(filtered, evt)
		}
	}

	return filtered
}

// String returns a human-readable description of the active criteria.
// Format: "From: 2026-01-15 | To: 2026-01-31 | Channels: DR1 | Weekends only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.From != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.From.Format("2006-01-02")))
	}
	if f.To != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.To.Format("2006-01-02")))
	}
	if len(f.Channels) > 0 {
		parts = append(parts, fmt.Sprintf("Channels: %s", strings.Join(f.Channels, ", ")))
	}
	if len(f.Teams) > 0 {
		parts = append(parts, fmt.Sprintf("Teams: %s", strings.Join(f.Teams, ", ")))
	}
	if len(f.Competitions) > 0 {
		parts = append(parts, fmt.Sprintf("Competitions: %s", strings.Join(f.Competitions, ", ")))
	}
	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	return strings.Join(parts, " | ")
}
