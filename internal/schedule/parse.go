package schedule

import (
	"errors"
	"time"

	"github.com/pfrederiksen/handball-tv/internal/event"
)

// ErrNoEvents is returned when a full parse yields zero events. Callers must
// treat it as fatal: an empty result almost always means the page structure
// drifted, not that no handball is on TV.
var ErrNoEvents = errors.New("no events found in schedule text")

// Stats counts what a parse saw and what it discarded. They exist so a run
// that produced nothing can explain itself.
type Stats struct {
	Lines             int `json:"lines"`
	DateHeaders       int `json:"date_headers"`
	TimeHeaders       int `json:"time_headers"`
	SkippedDateTokens int `json:"skipped_date_tokens"`
	SkippedTimeTokens int `json:"skipped_time_tokens"`
	Blocks            int `json:"blocks"`
	NoSummary         int `json:"no_summary"`
	RejectedChannel   int `json:"rejected_channel"`
	Duplicates        int `json:"duplicates"`
}

// Result is a completed parse: deduplicated events in (start, summary) order
// plus the counters accumulated on the way.
type Result struct {
	Events []*event.Event `json:"events"`
	Stats  Stats          `json:"stats"`
}

// scanState is the context threaded through the line fold. date carries the
// current header date as a wall-clock value in UTC; the zone label is
// attached at encoding time, mirroring how the page itself has no notion of
// offsets.
type scanState struct {
	year      int
	lastMonth time.Month
	date      time.Time
	block     *openBlock
}

// openBlock collects content lines under one (date, time) pair until the
// next header, a footer marker or the line cap completes it.
type openBlock struct {
	start time.Time
	lines []string
}

// Parse classifies the normalized lines, groups them into blocks and
// resolves each block into at most one event. The returned Result is
// non-nil even when the error is ErrNoEvents so callers can log the stats.
func Parse(lines []string, opts Options) (*Result, error) {
	rec, err := newRecognizer(opts)
	if err != nil {
		return nil, err
	}

	state := scanState{year: opts.BaseYear}
	if state.year == 0 {
		state.year = time.Now().Year()
	}

	res := &Result{Stats: Stats{Lines: len(lines)}}
	var extracted []*event.Event

	complete := func(block *openBlock) {
		if block == nil {
			return
		}
		res.Stats.Blocks++
		if evt := resolveBlock(block, rec, opts.Duration, &res.Stats); evt != nil {
			extracted = append(extracted, evt)
		}
	}

	for _, line := range lines {
		if rec.isFooter(line) {
			complete(state.block)
			state.block = nil
			continue
		}

		if tok, matched := rec.matchDate(line); matched {
			complete(state.block)
			state.block = nil
			if tok == nil {
				res.Stats.SkippedDateTokens++
				continue
			}
			res.Stats.DateHeaders++
			// The page prints no years. A month smaller than the previous
			// one means the listing crossed into the next year.
			if state.lastMonth != 0 && tok.month < state.lastMonth {
				state.year++
			}
			state.lastMonth = tok.month
			state.date = time.Date(state.year, tok.month, tok.day, 0, 0, 0, 0, time.UTC)
			continue
		}

		if tok, matched := rec.matchTime(line); matched {
			complete(state.block)
			state.block = nil
			if tok == nil {
				res.Stats.SkippedTimeTokens++
				continue
			}
			res.Stats.TimeHeaders++
			// A time header before any date header is inert: there is
			// nothing to anchor the kick-off to.
			if state.date.IsZero() {
				continue
			}
			state.block = &openBlock{
				start: state.date.Add(time.Duration(tok.hour)*time.Hour + time.Duration(tok.minute)*time.Minute),
			}
			continue
		}

		if state.block == nil {
			continue
		}
		state.block.lines = append(state.block.lines, line)
		if rec.opts.MaxBlockLines > 0 && len(state.block.lines) >= rec.opts.MaxBlockLines {
			complete(state.block)
			state.block = nil
		}
	}
	complete(state.block)

	res.Events = event.Dedupe(extracted)
	res.Stats.Duplicates = len(extracted) - len(res.Events)

	if len(res.Events) == 0 {
		return res, ErrNoEvents
	}
	return res, nil
}

// resolveBlock runs the extraction strategies over a completed block and
// builds the event, or returns nil when the block yields none.
func resolveBlock(block *openBlock, rec *recognizer, duration time.Duration, stats *Stats) *event.Event {
	if len(block.lines) == 0 {
		return nil
	}
	fields, ok := extractFields(block.lines, rec)
	if !ok {
		stats.NoSummary++
		return nil
	}
	if !rec.channelAllowed(fields.channel) {
		stats.RejectedChannel++
		return nil
	}
	return event.New(block.start, block.start.Add(duration), fields.summary, fields.channel, fields.description)
}
