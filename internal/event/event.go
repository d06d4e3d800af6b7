package event

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is one televised match. Start and End are wall-clock values carried
// in UTC; the broadcast timezone is a property of the calendar document, not
// of the event.
type Event struct {
	ID          string    `json:"id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Summary     string    `json:"summary"`
	Channel     string    `json:"channel,omitempty"`
	Description string    `json:"description,omitempty"`
}

// identityLayout is the wall-clock form hashed into the identity. It must
// never change: every published UID depends on it.
const identityLayout = "20060102T150405"

// Identity derives the deterministic UUIDv5 for a (start, summary) pair.
// Channel and description changes deliberately keep the same identity, so a
// rescheduled commentary note updates the existing calendar entry in place.
func Identity(start time.Time, summary string) string {
	key := start.Format(identityLayout) + "|" + strings.TrimSpace(summary)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

// New builds an Event with its identity populated.
func New(start, end time.Time, summary, channel, description string) *Event {
	return &Event{
		ID:          Identity(start, summary),
		Start:       start,
		End:         end,
		Summary:     summary,
		Channel:     channel,
		Description: description,
	}
}

// Dedupe collapses events sharing an identity, keeping the last occurrence
// in input order. The page repeats matches in teaser carousels before the
// main listing, and the main listing is the copy worth keeping. The result
// is sorted.
func Dedupe(events []*Event) []*Event {
	byID := make(map[string]*Event, len(events))
	for _, evt := range events {
		byID[evt.ID] = evt
	}
	out := make([]*Event, 0, len(byID))
	for _, evt := range byID {
		out = append(out, evt)
	}
	Sort(out)
	return out
}

// Sort orders events by start time, then summary, so output is stable across
// runs and feeds diff cleanly.
func Sort(events []*Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].Summary < events[j].Summary
	})
}
