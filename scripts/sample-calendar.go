package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/handball-tv/internal/calendar"
	"github.com/pfrederiksen/handball-tv/internal/event"
)

func main() {
	// A couple of sample broadcasts, times as Copenhagen wall clock
	events := []*event.Event{
		event.New(
			time.Date(2026, time.January, 15, 18, 0, 0, 0, time.UTC),
			time.Date(2026, time.January, 15, 20, 0, 0, 0, time.UTC),
			"Danmark - Norge",
			"TV2 Sport",
			"EM-kvalifikation",
		),
		event.New(
			time.Date(2026, time.January, 16, 19, 0, 0, 0, time.UTC),
			time.Date(2026, time.January, 16, 21, 0, 0, 0, time.UTC),
			"Team Esbjerg - Odense Håndbold",
			"DR1",
			"Kvindeligaen",
		),
	}

	// Generate the .ics document
	doc := calendar.Encode(events, calendar.Options{Name: "Håndbold på TV"})

	// Write to file (owner read/write only for security)
	filename := "sample-tv-program.ics"
	if err := os.WriteFile(filename, []byte(doc), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(doc)
}
