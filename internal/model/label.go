package model

import "strings"

// NormalizeLabel is the single normalization used on both sides of a grading
// comparison: surrounding whitespace trimmed, then lowercased.
func NormalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
