package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/handball-tv/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByStart   SortOrder = "start"
	SortByChannel SortOrder = "channel"
	SortBySummary SortOrder = "summary"
)

// sortEvents sorts a slice of events based on the specified sort order
func sortEvents(events []*event.Event, order SortOrder) {
	switch order {
	case SortByStart:
		event.Sort(events)
	case SortByChannel:
		sort.SliceStable(events, func(i, j int) bool {
			// Events without a channel group first.
			if events[i].Channel != events[j].Channel {
				return events[i].Channel < events[j].Channel
			}
			return events[i].Start.Before(events[j].Start)
		})
	case SortBySummary:
		sort.SliceStable(events, func(i, j int) bool {
			si := strings.ToLower(events[i].Summary)
			sj := strings.ToLower(events[j].Summary)
			if si != sj {
				return si < sj
			}
			return events[i].Start.Before(events[j].Start)
		})
	}
}
