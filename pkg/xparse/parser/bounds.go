package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
)

// layoutWidth is the number of columns a person block spans, from the
// sequence-number column through the vehicle payment column.
const layoutWidth = vehicleOffset + 3

// SuggestRange proposes a ParsePersons range for the sequence-number column
// col between fromRow and toRow: it starts at the first numbered row and ends
// at the last row holding data anywhere in the block layout, so trailing
// dependents of the final group are included.
func SuggestRange(g grid.Grid, col, fromRow, toRow int) (grid.Range, bool) {
	lastCol := min(col+layoutWidth-1, grid.MaxColumn)
	minRow, maxRow := -1, -1
	for row := fromRow; row <= toRow; row++ {
		if minRow < 0 && isNumbered(g.Value(grid.Address{Col: col, Row: row})) {
			minRow = row
		}
		if minRow < 0 {
			continue
		}
		for c := col; c <= lastCol; c++ {
			if notFalselyEmpty(g.Value(grid.Address{Col: c, Row: row})) {
				maxRow = row
				break
			}
		}
	}
	if minRow < 0 {
		return grid.Range{}, false
	}
	return grid.Range{
		Start: grid.Address{Col: col, Row: minRow},
		End:   grid.Address{Col: col, Row: maxRow},
	}, true
}

// isNumbered reports whether v reads as a sequence number, so header rows are skipped.
func isNumbered(v grid.Value) bool {
	if _, ok := v.Float(); ok {
		return true
	}
	_, err := strconv.Atoi(strings.Trim(v.String(), seqTrimChars))
	return err == nil
}
