// Package grid provides A1-style cell addressing and read access to worksheet cells.
package grid

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// MaxColumn is the last addressable column ('Z'). Multi-letter columns are not supported.
const MaxColumn = 26

// ErrColumnOverflow indicates a column outside the A-Z range.
var ErrColumnOverflow = errors.New("column out of A-Z range")

// ErrInvalidRange indicates a malformed range specification such as "A1 :A2".
var ErrInvalidRange = errors.New("invalid range")

var dimensionsPattern = regexp.MustCompile(`^[a-zA-Z]+[0-9]+:[a-zA-Z]+[0-9]+$`)

// Address is a single-letter column plus a 1-based row, e.g. "B42".
type Address struct {
	// Col is the column index, 1 ('A') through 26 ('Z').
	Col int
	// Row is the 1-based row number.
	Row int
}

// ParseAddress parses a cell reference like "B42".
func ParseAddress(ref string) (Address, error) {
	col, row, err := excelize.CellNameToCoordinates(strings.TrimSpace(ref))
	if err != nil {
		return Address{}, fmt.Errorf("parse address %q: %w", ref, err)
	}
	if col > MaxColumn {
		return Address{}, fmt.Errorf("parse address %q: %w", ref, ErrColumnOverflow)
	}
	return Address{Col: col, Row: row}, nil
}

// MustAddress is like ParseAddress but panics on error. Intended for fixtures.
func MustAddress(ref string) Address {
	a, err := ParseAddress(ref)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the A1-style reference.
func (a Address) String() string {
	name, err := excelize.CoordinatesToCellName(a.Col, a.Row)
	if err != nil {
		return fmt.Sprintf("?%d", a.Row)
	}
	return name
}

// Shift returns the address with its column advanced by step.
// Leaving the A-Z range is reported as ErrColumnOverflow and logged; there is no wraparound.
func (a Address) Shift(step int) (Address, error) {
	col := a.Col + step
	if col < 1 || col > MaxColumn {
		if col > MaxColumn {
			log.Error().Str("address", a.String()).Int("step", step).Msg("can't shift column behind Z")
		} else {
			log.Error().Str("address", a.String()).Int("step", step).Msg("column not in A-Z range")
		}
		return Address{}, fmt.Errorf("shift %s by %d: %w", a, step, ErrColumnOverflow)
	}
	return Address{Col: col, Row: a.Row}, nil
}

// ShiftColumn parses ref and shifts it by step. It returns false when ref is
// malformed or the result leaves the A-Z range.
func ShiftColumn(ref string, step int) (string, bool) {
	a, err := ParseAddress(ref)
	if err != nil {
		log.Error().Err(err).Msg("shift column")
		return "", false
	}
	shifted, err := a.Shift(step)
	if err != nil {
		return "", false
	}
	return shifted.String(), true
}

// Range is an inclusive rectangle between two addresses.
type Range struct {
	Start Address
	End   Address
}

// String returns the range as "A2:A787".
func (r Range) String() string {
	return r.Start.String() + ":" + r.End.String()
}

// Shift moves both corners of the range by step columns.
func (r Range) Shift(step int) (Range, error) {
	start, err := r.Start.Shift(step)
	if err != nil {
		return Range{}, err
	}
	end, err := r.End.Shift(step)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: end}, nil
}

// ValidateDimensions reports whether s looks like "A2:A787".
func ValidateDimensions(s string) bool {
	return dimensionsPattern.MatchString(s)
}

// ParseRange parses a dimension string like "A2:A787" (also accepts $-anchored refs).
func ParseRange(s string) (Range, error) {
	cleaned := strings.ReplaceAll(s, "$", "")
	if !ValidateDimensions(cleaned) {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	parts := strings.Split(cleaned, ":")
	start, err := ParseAddress(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	end, err := ParseAddress(parts[1])
	if err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if end.Row < start.Row {
		return Range{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidRange, s)
	}
	return Range{Start: start, End: end}, nil
}

// MarshalText encodes the address as its A1 reference.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
