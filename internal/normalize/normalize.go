package normalize

import (
	"strings"
)

// Text canonicalizes free-form extracted text for matching: lower-cases,
// trims leading/trailing whitespace and collapses internal whitespace runs
// to a single space. It never fails; an empty or all-whitespace input
// yields "".
func Text(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, " ")
}

// IsBlank reports whether the input is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
