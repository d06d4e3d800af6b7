package schedule

import "strings"

// blockFields is the resolved content of one block before it becomes an
// event.
type blockFields struct {
	summary     string
	channel     string
	description string
}

// strategy resolves a block into a summary. used marks the line indexes the
// summary consumed so description assembly can skip them.
type strategy func(lines []string, rec *recognizer) (summary string, used map[int]bool, ok bool)

// strategies in priority order. The first one that succeeds wins; later ones
// exist for progressively messier page layouts.
var strategies = []strategy{
	extractPairingLine,
	extractSplitPairing,
	extractPositional,
}

// extractPairingLine finds a single line holding the whole pairing
// ("Danmark - Norge"). Lines that look like competition metadata are passed
// over so a banner such as "Kvindeligaen, 3. runde" never shadows the match
// below it.
func extractPairingLine(lines []string, rec *recognizer) (string, map[int]bool, bool) {
	for i, line := range lines {
		if pairingRe.MatchString(line) && !rec.isMetadata(line) {
			return line, map[int]bool{i: true}, true
		}
	}
	return "", nil, false
}

// extractSplitPairing handles pairings broken across three lines by the
// renderer: team, a lone dash, team.
func extractSplitPairing(lines []string, rec *recognizer) (string, map[int]bool, bool) {
	for i := 1; i < len(lines)-1; i++ {
		if lines[i] != "-" && lines[i] != "–" {
			continue
		}
		return lines[i-1] + " - " + lines[i+1], map[int]bool{i - 1: true, i: true, i + 1: true}, true
	}
	return "", nil, false
}

// extractPositional is the last resort: join the first two lines that are
// not channel mentions into a best-effort pairing. Header lines never reach
// a block, so channel mentions are the only class left to dodge.
func extractPositional(lines []string, rec *recognizer) (string, map[int]bool, bool) {
	used := make(map[int]bool, 2)
	var picked []string
	for i, line := range lines {
		if rec.findChannel(line) != "" {
			continue
		}
		picked = append(picked, line)
		used[i] = true
		if len(picked) == 2 {
			return picked[0] + " - " + picked[1], used, true
		}
	}
	return "", nil, false
}

// extractFields resolves summary, channel and description for one block.
// ok is false when no strategy produced a summary, which drops the block.
func extractFields(lines []string, rec *recognizer) (blockFields, bool) {
	var summary string
	var used map[int]bool
	ok := false
	for _, extract := range strategies {
		if summary, used, ok = extract(lines, rec); ok {
			break
		}
	}
	if !ok {
		return blockFields{}, false
	}

	channel, channelLine := blockChannel(lines, rec)

	var desc []string
	for i, line := range lines {
		if used[i] || i == channelLine || line == summary {
			continue
		}
		desc = append(desc, line)
	}

	fields := blockFields{
		summary:     summary,
		channel:     channel,
		description: strings.Join(desc, "\n"),
	}

	// Positional picks sometimes grab a competition banner as the summary
	// while the real pairing landed in the description. Swap them back.
	if rec.isMetadata(fields.summary) && looksLikePairing(fields.description) {
		fields.summary, fields.description = fields.description, fields.summary
	}
	return fields, true
}

// blockChannel scans a block for its channel. Lines carrying the broadcast
// keyword ("Kampen afspilles på ...") are authoritative and win over
// incidental mentions elsewhere in the block. Returns the canonical channel
// name and the index of the line that supplied it, or ("", -1).
func blockChannel(lines []string, rec *recognizer) (string, int) {
	for i, line := range lines {
		if !rec.mentionsBroadcast(line) {
			continue
		}
		if name := rec.findChannel(line); name != "" {
			return name, i
		}
	}
	for i, line := range lines {
		if name := rec.findChannel(line); name != "" {
			return name, i
		}
	}
	return "", -1
}

// looksLikePairing reports whether a description is a plausible misplaced
// match title: a single line containing a spaced dash pairing.
func looksLikePairing(desc string) bool {
	return desc != "" && !strings.Contains(desc, "\n") && pairingRe.MatchString(desc)
}
