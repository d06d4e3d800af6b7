// Package schedule turns the rendered text of the danskhaandbold.dk TV
// programme page into calendar events.
//
// The page carries no machine-readable structure: dates ("torsdag 15. jan."),
// kick-off times ("kl. 18:00"), match pairings, competition names and channel
// mentions all appear as bare text lines. The parser classifies each line,
// groups content lines under the nearest (date, time) pair, and resolves each
// group into at most one event using a prioritized list of extraction
// strategies. Parsing is a single forward pass over the line sequence with an
// explicit scan context; it performs no I/O and never retries.
package schedule
