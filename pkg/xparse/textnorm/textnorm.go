// Package textnorm normalizes free-text cell content before comparison.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s in NFC form, case-folded and trimmed.
// NFC matters for sheets that store "й" and "ё" as base letter plus combining mark.
func Fold(s string) string {
	return strings.TrimSpace(cases.Fold().String(norm.NFC.String(s)))
}

// Collapse folds s and collapses runs of whitespace into single spaces.
func Collapse(s string) string {
	return strings.Join(strings.Fields(Fold(s)), " ")
}
