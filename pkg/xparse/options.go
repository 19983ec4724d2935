// Package xparse extracts asset declarations from spreadsheets into
// structured person documents.
package xparse

import (
	"github.com/ukaji3/xparse-go/pkg/xparse/dictionary"
)

// Options configures extraction behavior.
type Options struct {
	// Sheet is the worksheet to read. Empty selects the first sheet.
	Sheet string
	// ColumnRange is the sequence-number column range, e.g. "A2:A787".
	ColumnRange string
	// Dictionary resolves category labels to codes. If nil, every label
	// passes through unresolved.
	Dictionary *dictionary.Store
	// RunID tags the run in logs and stores. If empty, one is generated.
	RunID string
}

