package schedule

import "strings"

// NormalizeLine trims a raw text line and collapses internal whitespace runs
// to a single space. strings.Fields splits on unicode.IsSpace, so NBSP and
// other exotic spaces emitted by HTML renderers are collapsed too.
func NormalizeLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeLines normalizes every line and drops the ones that end up empty.
// Classification and extraction operate on the normalized sequence only.
func NormalizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if norm := NormalizeLine(line); norm != "" {
			out = append(out, norm)
		}
	}
	return out
}
