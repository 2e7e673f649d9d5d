package policy

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSimplifyThreshold is the diff size, in characters, above which a diff is shortened
	DefaultSimplifyThreshold = 1000

	// TruncationMarker replaces the dropped middle of a shortened diff
	TruncationMarker = "... [diff truncated for API compatibility] ..."

	keepLines = 10
)

// textLength counts characters of lines joined with newlines
func textLength(lines []string) int {
	if len(lines) == 0 {
		return 0
	}
	n := len(lines) - 1
	for _, line := range lines {
		n += utf8.RuneCountInString(line)
	}
	return n
}

// SimplifyLines keeps the first and last ten lines of a diff longer than
// threshold characters and replaces everything between them with
// TruncationMarker. Short diffs, and diffs with no middle to drop, are
// returned unchanged.
func SimplifyLines(lines []string, threshold int) []string {
	if textLength(lines) <= threshold {
		return lines
	}
	if len(lines) <= 2*keepLines+1 {
		return lines
	}

	out := make([]string, 0, 2*keepLines+1)
	out = append(out, lines[:keepLines]...)
	out = append(out, TruncationMarker)
	out = append(out, lines[len(lines)-keepLines:]...)
	return out
}

// Simplify is SimplifyLines over a newline separated diff
func Simplify(diff string, threshold int) string {
	if utf8.RuneCountInString(diff) <= threshold {
		return diff
	}
	return strings.Join(SimplifyLines(strings.Split(diff, "\n"), threshold), "\n")
}

// Simplified reports whether after is a shortened form of before
func Simplified(before, after string) bool {
	return before != after
}
