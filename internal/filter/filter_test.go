package filter

import (
	"testing"
	"time"

	"github.com/pfrederiksen/handball-tv/internal/event"
)

// mkEvent builds a broadcast on the given January 2026 day. The 15th is a
// Thursday, the 17th a Saturday.
func mkEvent(day, hour int, summary, channel, description string) *event.Event {
	start := time.Date(2026, time.January, day, hour, 0, 0, 0, time.UTC)
	return event.New(start, start.Add(90*time.Minute), summary, channel, description)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{
			name:   "empty filter",
			filter: New(),
			want:   true,
		},
		{
			name: "filter with from date",
			filter: &Filter{
				From: timePtr(time.Now()),
			},
			want: false,
		},
		{
			name: "filter with weekends only",
			filter: &Filter{
				WeekendsOnly: true,
			},
			want: false,
		},
		{
			name: "filter with channel",
			filter: &Filter{
				Channels: []string{"DR1"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("Filter.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	thursday := mkEvent(15, 18, "Danmark - Norge", "TV2 Sport", "EM-kvalifikation")
	saturday := mkEvent(17, 15, "Aalborg Håndbold - GOG", "TV2 Play", "Herreligaen, 12. runde")

	tests := []struct {
		name   string
		filter *Filter
		event  *event.Event
		want   bool
	}{
		{
			name:   "empty filter matches all",
			filter: New(),
			event:  thursday,
			want:   true,
		},
		{
			name: "channel filter matches case-insensitively",
			filter: &Filter{
				Channels: []string{"tv2 sport"},
			},
			event: thursday,
			want:  true,
		},
		{
			name: "channel filter does not match",
			filter: &Filter{
				Channels: []string{"DR1"},
			},
			event: thursday,
			want:  false,
		},
		{
			name: "channel filter is exact not substring",
			filter: &Filter{
				Channels: []string{"TV2"},
			},
			event: thursday,
			want:  false,
		},
		{
			name: "team filter matches substring",
			filter: &Filter{
				Teams: []string{"aalborg"},
			},
			event: saturday,
			want:  true,
		},
		{
			name: "team filter matches either side of the pairing",
			filter: &Filter{
				Teams: []string{"GOG"},
			},
			event: saturday,
			want:  true,
		},
		{
			name: "team filter does not match",
			filter: &Filter{
				Teams: []string{"Skjern"},
			},
			event: saturday,
			want:  false,
		},
		{
			name: "competition filter matches description",
			filter: &Filter{
				Competitions: []string{"herreligaen"},
			},
			event: saturday,
			want:  true,
		},
		{
			name: "competition filter does not match event without description",
			filter: &Filter{
				Competitions: []string{"Herreligaen"},
			},
			event: mkEvent(15, 20, "Skjern - Mors-Thy", "TV2 Sport", ""),
			want:  false,
		},
		{
			name: "date window includes boundary day",
			filter: &Filter{
				From: timePtr(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)),
				To:   timePtr(time.Date(2026, time.January, 15, 23, 59, 59, 0, time.UTC)),
			},
			event: thursday,
			want:  true,
		},
		{
			name: "date window excludes earlier day",
			filter: &Filter{
				From: timePtr(time.Date(2026, time.January, 16, 0, 0, 0, 0, time.UTC)),
			},
			event: thursday,
			want:  false,
		},
		{
			name: "date window excludes later day",
			filter: &Filter{
				To: timePtr(time.Date(2026, time.January, 16, 23, 59, 59, 0, time.UTC)),
			},
			event: saturday,
			want:  false,
		},
		{
			name: "weekends only matches saturday",
			filter: &Filter{
				WeekendsOnly: true,
			},
			event: saturday,
			want:  true,
		},
		{
			name: "weekends only rejects thursday",
			filter: &Filter{
				WeekendsOnly: true,
			},
			event: thursday,
			want:  false,
		},
		{
			name: "all criteria must match",
			filter: &Filter{
				Channels:     []string{"TV2 Play"},
				WeekendsOnly: true,
				Teams:        []string{"Aalborg"},
			},
			event: saturday,
			want:  true,
		},
		{
			name: "one failing criterion rejects",
			filter: &Filter{
				Channels:     []string{"TV2 Play"},
				WeekendsOnly: true,
			},
			event: thursday,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.event); got != tt.want {
				t.Errorf("Filter.Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	events := []*event.Event{
		mkEvent(15, 18, "Danmark - Norge", "TV2 Sport", "EM-kvalifikation"),
		mkEvent(17, 15, "Aalborg Håndbold - GOG", "TV2 Play", "Herreligaen, 12. runde"),
		mkEvent(18, 14, "Team Esbjerg - Odense Håndbold", "DR1", "Kvindeligaen"),
	}

	t.Run("empty filter returns input unchanged", func(t *testing.T) {
		got := New().Apply(events)
		if len(got) != len(events) {
			t.Fatalf("Apply() returned %d events, want %d", len(got), len(events))
		}
	})

	t.Run("weekend filter keeps saturday and sunday", func(t *testing.T) {
		f := &Filter{WeekendsOnly: true}
		got := f.Apply(events)
		if len(got) != 2 {
			t.Fatalf("Apply() returned %d events, want 2", len(got))
		}
		if got[0].Summary != "Aalborg Håndbold - GOG" || got[1].Summary != "Team Esbjerg - Odense Håndbold" {
			t.Errorf("Apply() kept wrong events: %q, %q", got[0].Summary, got[1].Summary)
		}
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		f := &Filter{Channels: []string{"Kanal 5"}}
		if got := f.Apply(events); len(got) != 0 {
			t.Errorf("Apply() returned %d events, want 0", len(got))
		}
	})
}

func TestFilter_String(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   string
	}{
		{
			name:   "empty filter",
			filter: New(),
			want:   "No active filters",
		},
		{
			name: "date window and channels",
			filter: &Filter{
				From:     timePtr(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)),
				To:       timePtr(time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC)),
				Channels: []string{"DR1", "TV2 Sport"},
			},
			want: "From: 2026-01-15 | To: 2026-01-31 | Channels: DR1, TV2 Sport",
		},
		{
			name: "teams and weekends",
			filter: &Filter{
				Teams:        []string{"Aalborg"},
				WeekendsOnly: true,
			},
			want: "Teams: Aalborg | Weekends only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.String(); got != tt.want {
				t.Errorf("Filter.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
