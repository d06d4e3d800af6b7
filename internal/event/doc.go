// Package event provides the broadcast event model shared by the parser,
// the calendar encoder and the CLI output modes.
//
// Each event carries a deterministic UUIDv5 identity derived from its start
// instant and summary, so repeated scrapes of the same schedule produce the
// same IDs and calendar clients treat regenerated feeds as updates rather
// than duplicates.
package event
