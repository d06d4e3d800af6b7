package calendar

import (
	"strings"
	"unicode/utf8"
)

// maxLineOctets is the RFC 5545 §3.1 limit on a physical content line,
// excluding the CRLF. Continuation lines spend one octet on their leading
// space.
const maxLineOctets = 75

// foldLine splits a logical content line into physical lines of at most
// maxLineOctets bytes. Splits never land inside a UTF-8 sequence, which
// matters for Danish team names. Continuation parts carry their leading
// space already.
func foldLine(line string) []string {
	if len(line) <= maxLineOctets {
		return []string{line}
	}
	var parts []string
	cur := make([]byte, 0, maxLineOctets)
	for _, r := range line {
		if len(cur)+utf8.RuneLen(r) > maxLineOctets {
			parts = append(parts, string(cur))
			cur = append(cur[:0], ' ')
		}
		cur = utf8.AppendRune(cur, r)
	}
	return append(parts, string(cur))
}

// writeContentLine folds a logical line and writes the physical lines with
// CRLF terminators.
func writeContentLine(b *strings.Builder, line string) {
	for _, part := range foldLine(line) {
		b.WriteString(part)
		b.WriteString("\r\n")
	}
}
