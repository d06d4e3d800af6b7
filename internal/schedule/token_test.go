package schedule

import (
	"testing"
	"time"
)

func mustRecognizer(t *testing.T, opts Options) *recognizer {
	t.Helper()
	rec, err := newRecognizer(opts)
	if err != nil {
		t.Fatalf("newRecognizer() error = %v", err)
	}
	return rec
}

func TestMatchDate(t *testing.T) {
	rec := mustRecognizer(t, DefaultOptions())

	tests := []struct {
		name        string
		line        string
		wantMatched bool
		wantDay     int
		wantMonth   time.Month
	}{
		{
			name:        "standard header",
			line:        "torsdag 15. jan.",
			wantMatched: true,
			wantDay:     15,
			wantMonth:   time.January,
		},
		{
			name:        "capitalized weekday",
			line:        "Torsdag 15. Jan.",
			wantMatched: true,
			wantDay:     15,
			wantMonth:   time.January,
		},
		{
			name:        "may has no dot",
			line:        "lørdag 3. maj",
			wantMatched: true,
			wantDay:     3,
			wantMonth:   time.May,
		},
		{
			name:        "unknown month abbreviation",
			line:        "torsdag 15. january",
			wantMatched: true,
		},
		{
			name:        "day out of range",
			line:        "torsdag 32. jan.",
			wantMatched: true,
		},
		{
			name:        "day zero",
			line:        "torsdag 0. jan.",
			wantMatched: true,
		},
		{
			name: "not a date header",
			line: "Danmark - Norge",
		},
		{
			name: "unknown weekday",
			line: "thursday 15. jan.",
		},
		{
			name: "trailing content breaks the header",
			line: "torsdag 15. jan. kl. 18:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, matched := rec.matchDate(tt.line)
			if matched != tt.wantMatched {
				t.Fatalf("matchDate(%q) matched = %v, want %v", tt.line, matched, tt.wantMatched)
			}
			valid := tt.wantDay != 0
			if (tok != nil) != valid {
				t.Fatalf("matchDate(%q) tok = %v, want valid = %v", tt.line, tok, valid)
			}
			if tok != nil && (tok.day != tt.wantDay || tok.month != tt.wantMonth) {
				t.Errorf("matchDate(%q) = (%d, %v), want (%d, %v)", tt.line, tok.day, tok.month, tt.wantDay, tt.wantMonth)
			}
		})
	}
}

func TestMatchTime(t *testing.T) {
	rec := mustRecognizer(t, DefaultOptions())

	tests := []struct {
		name        string
		line        string
		wantMatched bool
		wantHour    int
		wantMinute  int
		wantValid   bool
	}{
		{
			name:        "with keyword",
			line:        "kl. 18:00",
			wantMatched: true,
			wantValid:   true,
			wantHour:    18,
		},
		{
			name:        "keyword glued to digits",
			line:        "kl.18:00",
			wantMatched: true,
			wantValid:   true,
			wantHour:    18,
		},
		{
			name:        "bare time",
			line:        "9:05",
			wantMatched: true,
			wantValid:   true,
			wantHour:    9,
			wantMinute:  5,
		},
		{
			name:        "hour out of range",
			line:        "kl. 25:00",
			wantMatched: true,
		},
		{
			name:        "minute out of range",
			line:        "kl. 18:61",
			wantMatched: true,
		},
		{
			name: "time inside a sentence",
			line: "Kampen starter kl. 18:00",
		},
		{
			name: "no minutes",
			line: "kl. 18",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, matched := rec.matchTime(tt.line)
			if matched != tt.wantMatched {
				t.Fatalf("matchTime(%q) matched = %v, want %v", tt.line, matched, tt.wantMatched)
			}
			if (tok != nil) != tt.wantValid {
				t.Fatalf("matchTime(%q) tok = %v, want valid = %v", tt.line, tok, tt.wantValid)
			}
			if tok != nil && (tok.hour != tt.wantHour || tok.minute != tt.wantMinute) {
				t.Errorf("matchTime(%q) = (%d, %d), want (%d, %d)", tt.line, tok.hour, tok.minute, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestFindChannel(t *testing.T) {
	rec := mustRecognizer(t, DefaultOptions())

	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "longest name wins over its prefixes",
			line: "Kampen afspilles på TV2 Sport X",
			want: "TV2 Sport X",
		},
		{
			name: "two-word name beats bare TV2",
			line: "Se kampen på TV2 Sport",
			want: "TV2 Sport",
		},
		{
			name: "bare TV2",
			line: "Vises på TV2",
			want: "TV2",
		},
		{
			name: "missing space between words",
			line: "TV2Sport viser kampen",
			want: "TV2 Sport",
		},
		{
			name: "case insensitive",
			line: "sendes på dr1",
			want: "DR1",
		},
		{
			name: "no channel",
			line: "Danmark - Norge",
			want: "",
		},
		{
			name: "channel name inside a word does not match",
			line: "HDR1000 highlights",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rec.findChannel(tt.line); got != tt.want {
				t.Errorf("findChannel(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsMetadata(t *testing.T) {
	rec := mustRecognizer(t, DefaultOptions())

	tests := []struct {
		line string
		want bool
	}{
		{"Kvindeligaen, 3. runde", true},
		{"EM-kvalifikation", true},
		{"Santander Cup", true},
		{"Kvartfinale", true},
		{"Gruppe B", true},
		{"VM 2026", true},
		{"Danmark - Norge", false},
		{"Aalborg Håndbold - GOG", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := rec.isMetadata(tt.line); got != tt.want {
				t.Errorf("isMetadata(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsFooter(t *testing.T) {
	rec := mustRecognizer(t, DefaultOptions())

	tests := []struct {
		line string
		want bool
	}{
		{"Besøg Landsholdshoppen", true},
		{"CVR nummer: 12345678", true},
		{"Vi bruger cookies (GDPR)", true},
		{"Leveres af Boozt.com", true},
		{"Danmark - Norge", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := rec.isFooter(tt.line); got != tt.want {
				t.Errorf("isFooter(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestChannelAllowed(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowedChannels = []string{"DR1", "TV2 Sport"}
	rec := mustRecognizer(t, opts)

	tests := []struct {
		channel string
		want    bool
	}{
		{"DR1", true},
		{"TV2 Sport", true},
		{"TV2", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := rec.channelAllowed(tt.channel); got != tt.want {
			t.Errorf("channelAllowed(%q) = %v, want %v", tt.channel, got, tt.want)
		}
	}

	open := mustRecognizer(t, DefaultOptions())
	if !open.channelAllowed("TV2") || !open.channelAllowed("") {
		t.Error("channelAllowed should pass everything when no allow-list is set")
	}
}
