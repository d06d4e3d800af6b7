package event

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func date(day, hour, min int) time.Time {
	return time.Date(2026, time.January, day, hour, min, 0, 0, time.UTC)
}

func TestIdentity(t *testing.T) {
	base := date(15, 18, 0)

	tests := []struct {
		name     string
		aStart   time.Time
		aSummary string
		bStart   time.Time
		bSummary string
		same     bool
	}{
		{
			name:   "identical inputs",
			aStart: base, aSummary: "Danmark - Norge",
			bStart: base, bSummary: "Danmark - Norge",
			same: true,
		},
		{
			name:   "different start",
			aStart: base, aSummary: "Danmark - Norge",
			bStart: date(15, 20, 30), bSummary: "Danmark - Norge",
			same: false,
		},
		{
			name:   "different summary",
			aStart: base, aSummary: "Danmark - Norge",
			bStart: base, bSummary: "Danmark - Sverige",
			same: false,
		},
		{
			name:   "same wall clock on different days",
			aStart: base, aSummary: "Danmark - Norge",
			bStart: date(16, 18, 0), bSummary: "Danmark - Norge",
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Identity(tt.aStart, tt.aSummary)
			b := Identity(tt.bStart, tt.bSummary)

			if (a == b) != tt.same {
				t.Errorf("Identity equality = %v, want %v (a=%s b=%s)", a == b, tt.same, a, b)
			}
		})
	}
}

func TestIdentity_IsStableUUID(t *testing.T) {
	id := Identity(date(15, 18, 0), "Danmark - Norge")

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("Identity is not a valid UUID: %v", err)
	}
	if parsed.Version() != 5 {
		t.Errorf("UUID version = %d, want 5", parsed.Version())
	}

	if again := Identity(date(15, 18, 0), "Danmark - Norge"); again != id {
		t.Errorf("Identity not deterministic: %s vs %s", id, again)
	}
}

func TestNew(t *testing.T) {
	start := date(15, 18, 0)
	end := start.Add(90 * time.Minute)

	evt := New(start, end, "Danmark - Norge", "TV2 Sport", "EM-kvalifikation")

	if evt.ID != Identity(start, "Danmark - Norge") {
		t.Errorf("ID = %s, want identity of (start, summary)", evt.ID)
	}
	if !evt.Start.Equal(start) || !evt.End.Equal(end) {
		t.Errorf("times = %v/%v, want %v/%v", evt.Start, evt.End, start, end)
	}
	if evt.Summary != "Danmark - Norge" {
		t.Errorf("Summary = %q", evt.Summary)
	}
	if evt.Channel != "TV2 Sport" {
		t.Errorf("Channel = %q", evt.Channel)
	}
	if evt.Description != "EM-kvalifikation" {
		t.Errorf("Description = %q", evt.Description)
	}
}

func TestNew_IdentityIgnoresChannelAndDescription(t *testing.T) {
	start := date(15, 18, 0)
	end := start.Add(90 * time.Minute)

	teaser := New(start, end, "Danmark - Norge", "", "")
	full := New(start, end, "Danmark - Norge", "TV2 Sport", "EM-kvalifikation")

	if teaser.ID != full.ID {
		t.Errorf("IDs differ: %s vs %s", teaser.ID, full.ID)
	}
}

func TestDedupe(t *testing.T) {
	start := date(15, 18, 0)
	end := start.Add(90 * time.Minute)

	teaser := New(start, end, "Danmark - Norge", "", "")
	full := New(start, end, "Danmark - Norge", "TV2 Sport", "EM-kvalifikation")
	other := New(date(16, 19, 0), date(16, 20, 30), "Team Esbjerg - Odense Håndbold", "DR1", "")

	got := Dedupe([]*Event{teaser, other, full})

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Later observation wins entirely.
	if got[0].Channel != "TV2 Sport" || got[0].Description != "EM-kvalifikation" {
		t.Errorf("duplicate not overwritten by later observation: %+v", got[0])
	}
	if got[1].Summary != "Team Esbjerg - Odense Håndbold" {
		t.Errorf("order wrong after dedupe: %+v", got[1])
	}
}

func TestSort(t *testing.T) {
	a := New(date(16, 19, 0), date(16, 20, 30), "Aalborg Håndbold - GOG", "", "")
	b := New(date(15, 18, 0), date(15, 19, 30), "Danmark - Norge", "", "")
	c := New(date(15, 18, 0), date(15, 19, 30), "Aalborg Håndbold - GOG", "", "")

	events := []*Event{a, b, c}
	Sort(events)

	want := []string{
		"Aalborg Håndbold - GOG", // 15th, ties broken by summary
		"Danmark - Norge",        // 15th
		"Aalborg Håndbold - GOG", // 16th
	}
	for i, summary := range want {
		if events[i].Summary != summary {
			t.Errorf("events[%d].Summary = %q, want %q", i, events[i].Summary, summary)
		}
	}
	if !events[0].Start.Before(events[2].Start) {
		t.Error("events not ordered by start time")
	}
}

func TestChanges(t *testing.T) {
	monday := New(date(12, 18, 0), date(12, 19, 30), "Danmark - Norge", "TV2 Sport", "")
	tuesday := New(date(13, 19, 0), date(13, 20, 30), "Aalborg Håndbold - GOG", "TV2 Play", "")
	wednesday := New(date(14, 20, 0), date(14, 21, 30), "Team Esbjerg - Odense Håndbold", "DR1", "")

	tests := []struct {
		name        string
		previous    []*Event
		current     []*Event
		wantAdded   []string
		wantRemoved []string
	}{
		{
			name:      "first run adds everything",
			previous:  nil,
			current:   []*Event{monday, tuesday},
			wantAdded: []string{"Danmark - Norge", "Aalborg Håndbold - GOG"},
		},
		{
			name:        "one in one out",
			previous:    []*Event{monday, tuesday},
			current:     []*Event{tuesday, wednesday},
			wantAdded:   []string{"Team Esbjerg - Odense Håndbold"},
			wantRemoved: []string{"Danmark - Norge"},
		},
		{
			name:     "identical runs report nothing",
			previous: []*Event{monday, tuesday},
			current:  []*Event{monday, tuesday},
		},
		{
			name:     "channel change alone is not a change",
			previous: []*Event{monday},
			current: []*Event{
				New(monday.Start, monday.End, monday.Summary, "DR2", "flyttet"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := Changes(tt.previous, tt.current)

			if len(added) != len(tt.wantAdded) {
				t.Fatalf("added = %d events, want %d", len(added), len(tt.wantAdded))
			}
			for i, summary := range tt.wantAdded {
				if added[i].Summary != summary {
					t.Errorf("added[%d] = %q, want %q", i, added[i].Summary, summary)
				}
			}

			if len(removed) != len(tt.wantRemoved) {
				t.Fatalf("removed = %d events, want %d", len(removed), len(tt.wantRemoved))
			}
			for i, summary := range tt.wantRemoved {
				if removed[i].Summary != summary {
					t.Errorf("removed[%d] = %q, want %q", i, removed[i].Summary, summary)
				}
			}
		})
	}
}
