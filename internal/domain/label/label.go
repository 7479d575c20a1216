// Package label normalizes and compares human-readable labels.
//
// Matching is deliberately strict: exact equality after trimming and
// locale-insensitive case folding, nothing fuzzy. The field must show exactly
// the product's name, not something close to it.
package label

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize returns the comparable key for a label: surrounding whitespace
// trimmed, then Unicode case folding applied.
func Normalize(s string) string {
	// A Caser is stateful and not safe for concurrent use; build one per call.
	return cases.Fold().String(strings.TrimSpace(s))
}

// Matches reports whether two labels are equal after normalization.
func Matches(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
