// Package storage persists the last successfully generated calendar feed.
//
// The store keeps two files in its data directory: tv-program.ics, the feed
// itself, and snapshot.json, the events and parse counters behind it. Serve
// mode uses them to keep publishing a stale feed when a refresh fails, and
// the list command can inspect the snapshot without hitting the network.
// All writes are atomic (temp file plus rename) so readers never observe a
// half-written feed.
package storage
