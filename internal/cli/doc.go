// Package cli implements the command-line interface for handball-tv.
//
// The cli package provides the Cobra-based CLI with subcommands for
// generating the calendar document (generate), inspecting extracted
// events (list), running the subscription endpoint (serve) and checking
// a generated file (validate). It coordinates the scraper, schedule,
// calendar, storage and server packages.
package cli
