// Package parser reconstructs person records from a declaration worksheet.
//
// A sheet lists filers in groups: the sequence-number column holds one value
// per group and the name column one value per person, with every following
// blank or dash row belonging to the same person. The parser scans those
// columns into slots, reads each person's cells at fixed column offsets,
// links dependents to their principal and maps records to output documents.
package parser

import (
	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
)

// Slot is a contiguous run of rows in one column treated as one entity:
// the first non-placeholder cell plus every placeholder cell below it.
type Slot struct {
	Start grid.Address
	End   grid.Address
	// Value is the value of the first cell.
	Value grid.Value
}

// Range returns the rows the slot spans.
func (s Slot) Range() grid.Range {
	return grid.Range{Start: s.Start, End: s.End}
}

// notFalselyEmpty reports whether a cell opens a new slot. Blank cells and
// dash placeholders such as " - " extend the current slot instead.
func notFalselyEmpty(v grid.Value) bool {
	if v.IsEmpty() {
		return false
	}
	switch v.Normalized() {
	case "-", "", " ":
		return false
	}
	return true
}

// ScanSlots partitions the column of start, rows start.Row..end.Row, into slots.
// Slots come back in row order and never overlap; leading placeholder rows
// before the first value are skipped.
func ScanSlots(g grid.Grid, start, end grid.Address) []Slot {
	var slots []Slot
	var current *Slot

	for _, cell := range grid.Column(g, start, end) {
		if notFalselyEmpty(cell.Value) {
			if current != nil {
				slots = append(slots, *current)
			}
			current = &Slot{Start: cell.Address, End: cell.Address, Value: cell.Value}
			continue
		}
		if current != nil {
			current.End = cell.Address
		}
	}
	if current != nil {
		slots = append(slots, *current)
	}
	return slots
}
