package util

import "strings"

// CleanText collapses runs of whitespace, non-breaking spaces included,
// into single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
