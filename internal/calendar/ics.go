package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/handball-tv/internal/event"
)

// DefaultProdID identifies this generator in published calendars.
const DefaultProdID = "-//pfrederiksen//handball-tv//DA"

// Options controls document-level properties of the encoded calendar.
// The zero value encodes a Copenhagen calendar with defaults for the rest.
type Options struct {
	// ProdID is the RFC 5545 product identifier. Empty means DefaultProdID.
	ProdID string

	// Name becomes X-WR-CALNAME, the display name most clients show for a
	// subscribed feed. Empty omits the property.
	Name string

	// Timezone is the VTIMEZONE emitted and the TZID every event start and
	// end is labeled with. The zero value means Copenhagen.
	Timezone Timezone
}

// Encode renders events as a complete iCalendar document: calendar header,
// one VTIMEZONE, then one VEVENT per event in (start, summary) order. All
// events share a single DTSTAMP taken at encoding time, lines are folded at
// 75 octets and terminated with CRLF. Zero events yield a valid empty
// calendar; refusing to publish one is the caller's decision.
func Encode(events []*event.Event, opts Options) string {
	if opts.ProdID == "" {
		opts.ProdID = DefaultProdID
	}
	if opts.Timezone.ID == "" {
		opts.Timezone = Copenhagen
	}

	sorted := make([]*event.Event, len(events))
	copy(sorted, events)
	event.Sort(sorted)

	var ics strings.Builder

	writeContentLine(&ics, "BEGIN:VCALENDAR")
	writeContentLine(&ics, "PRODID:"+opts.ProdID)
	writeContentLine(&ics, "VERSION:2.0")
	writeContentLine(&ics, "CALSCALE:GREGORIAN")
	writeContentLine(&ics, "METHOD:PUBLISH")
	if opts.Name != "" {
		writeContentLine(&ics, "X-WR-CALNAME:"+escapeText(opts.Name))
	}

	writeTimezone(&ics, opts.Timezone)

	// One timestamp for the whole document so regenerated feeds differ only
	// where the schedule actually changed.
	dtstamp := formatUTC(time.Now())

	for _, evt := range sorted {
		writeEvent(&ics, evt, opts.Timezone.ID, dtstamp)
	}

	writeContentLine(&ics, "END:VCALENDAR")

	return ics.String()
}

func writeTimezone(ics *strings.Builder, tz Timezone) {
	writeContentLine(ics, "BEGIN:VTIMEZONE")
	writeContentLine(ics, "TZID:"+tz.ID)
	writeContentLine(ics, "X-LIC-LOCATION:"+tz.ID)
	writeTransition(ics, "DAYLIGHT", tz.Daylight)
	writeTransition(ics, "STANDARD", tz.Standard)
	writeContentLine(ics, "END:VTIMEZONE")
}

func writeTransition(ics *strings.Builder, kind string, tr Transition) {
	writeContentLine(ics, "BEGIN:"+kind)
	writeContentLine(ics, "TZOFFSETFROM:"+tr.OffsetFrom)
	writeContentLine(ics, "TZOFFSETTO:"+tr.OffsetTo)
	writeContentLine(ics, "TZNAME:"+tr.Name)
	writeContentLine(ics, "DTSTART:"+tr.Start)
	writeContentLine(ics, "RRULE:"+tr.Rule)
	writeContentLine(ics, "END:"+kind)
}

func writeEvent(ics *strings.Builder, evt *event.Event, tzid, dtstamp string) {
	writeContentLine(ics, "BEGIN:VEVENT")

	// UID is the deterministic event identity; clients update in place when
	// the feed is regenerated.
	writeContentLine(ics, "UID:"+evt.ID)
	writeContentLine(ics, "DTSTAMP:"+dtstamp)

	// Wall-clock times labeled with the zone; no UTC conversion.
	writeContentLine(ics, fmt.Sprintf("DTSTART;TZID=%s:%s", tzid, formatLocal(evt.Start)))
	writeContentLine(ics, fmt.Sprintf("DTEND;TZID=%s:%s", tzid, formatLocal(evt.End)))

	writeContentLine(ics, "SUMMARY:"+escapeText(evt.Summary))
	if evt.Channel != "" {
		writeContentLine(ics, "LOCATION:"+escapeText(evt.Channel))
	}
	if evt.Description != "" {
		writeContentLine(ics, "DESCRIPTION:"+escapeText(evt.Description))
	}

	writeContentLine(ics, "END:VEVENT")
}

// formatLocal formats a wall-clock instant without zone designator, for use
// with a TZID parameter.
func formatLocal(t time.Time) string {
	return t.Format("20060102T150405")
}

// formatUTC formats an instant as a UTC iCalendar date-time.
func formatUTC(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeText escapes TEXT property values according to RFC 5545 §3.3.11.
// Backslash must go first so later escapes are not double-escaped.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// UnescapeText is the exact inverse of escapeText for round-trip checks and
// consumers reading values back out of a feed. Unknown escape sequences are
// preserved verbatim.
func UnescapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		case '\\', ';', ',':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
