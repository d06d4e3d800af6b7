package scraper

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/handball-tv/internal/schedule"
)

// The fixture is a trimmed copy of the rendered programme page: site chrome,
// two day sections, three match cards, footer boilerplate.
func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/tv_program.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return data
}

func TestExtractLines_Fixture(t *testing.T) {
	lines, err := ExtractLines(bytes.NewReader(loadFixture(t)))
	if err != nil {
		t.Fatalf("ExtractLines() error = %v", err)
	}

	// Spot-check structure: headers must survive in document order.
	wantOrder := []string{
		"torsdag 15. jan.",
		"kl. 18:00",
		"Danmark - Norge",
		"kl. 20:30",
		"fredag 16. jan.",
		"kl. 19:00",
		"Besøg Landsholdshoppen",
	}
	idx := 0
	for _, line := range lines {
		if idx < len(wantOrder) && line == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("fixture lines missing %q in order; got lines: %v", wantOrder[idx], lines)
	}

	for _, line := range lines {
		if line == "" {
			t.Error("ExtractLines() returned an empty line")
		}
	}
}

// End to end from rendered HTML to events, minus the browser.
func TestFixtureParsesToEvents(t *testing.T) {
	lines, err := ExtractLines(bytes.NewReader(loadFixture(t)))
	if err != nil {
		t.Fatalf("ExtractLines() error = %v", err)
	}

	opts := schedule.DefaultOptions()
	opts.BaseYear = 2026
	res, err := schedule.Parse(lines, opts)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(res.Events) != 3 {
		t.Fatalf("Parse() returned %d events, want 3", len(res.Events))
	}

	first := res.Events[0]
	if want := time.Date(2026, time.January, 15, 18, 0, 0, 0, time.UTC); !first.Start.Equal(want) {
		t.Errorf("first event start = %v, want %v", first.Start, want)
	}
	if first.Summary != "Danmark - Norge" {
		t.Errorf("first event summary = %q, want %q", first.Summary, "Danmark - Norge")
	}
	if first.Channel != "TV2 Sport" {
		t.Errorf("first event channel = %q, want %q", first.Channel, "TV2 Sport")
	}
	if first.Description != "EM-kvalifikation" {
		t.Errorf("first event description = %q, want %q", first.Description, "EM-kvalifikation")
	}

	last := res.Events[2]
	if last.Summary != "Team Esbjerg - Odense Håndbold" {
		t.Errorf("last event summary = %q, want %q", last.Summary, "Team Esbjerg - Odense Håndbold")
	}
	if last.Channel != "DR1" {
		t.Errorf("last event channel = %q, want %q", last.Channel, "DR1")
	}
}

// renderOnce judges page readiness by listingSelector. It has to keep
// matching the rendered page structure, or every render attempt would wait
// out its timeout on a loaded page.
func TestListingSelectorMatchesRenderedPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(loadFixture(t)))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	cards := doc.Find(listingSelector)
	if cards.Length() != 3 {
		t.Fatalf("selector %q matched %d nodes in the rendered page, want 3 match cards", listingSelector, cards.Length())
	}
	if got := cards.First().Find("h3").Text(); got != "Danmark - Norge" {
		t.Errorf("first match card title = %q, want %q", got, "Danmark - Norge")
	}
}
