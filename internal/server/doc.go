// Package server runs the subscription endpoint for the generated feed.
//
// A Server holds the latest encoded calendar in memory and serves it on
// GET /tv-program.ics. A cron schedule re-runs the fetch/parse/encode
// pipeline; when a refresh fails the previous document keeps being served
// and the failure is surfaced on GET /health. On startup, a failed first
// refresh falls back to the feed persisted by the previous process.
package server
