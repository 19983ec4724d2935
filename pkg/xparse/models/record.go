// Package models defines the records produced while parsing a declaration sheet
// and the documents emitted for serialization.
package models

import (
	"encoding/json"
	"strconv"

	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
)

// SeqNumber is a declared sequence number as typed into the sheet.
type SeqNumber struct {
	// Value is the parsed integer when Valid.
	Value int
	// Raw is the cell text with surrounding punctuation stripped.
	Raw string
	// Valid reports whether Raw parsed as an integer.
	Valid bool
}

// String returns the integer form when valid, the raw text otherwise.
func (s SeqNumber) String() string {
	if s.Valid {
		return strconv.Itoa(s.Value)
	}
	return s.Raw
}

// MarshalJSON encodes a valid number as a JSON number and the raw text otherwise.
func (s SeqNumber) MarshalJSON() ([]byte, error) {
	if s.Valid {
		return json.Marshal(s.Value)
	}
	return marshalUnescaped(s.Raw)
}

// Ownership is one owned-realty row.
type Ownership struct {
	Object   grid.Value `json:"own_obj"`
	Type     grid.Value `json:"own_type"`
	Square   grid.Value `json:"own_sq"`
	Location grid.Value `json:"own_location"`
}

// Usage is one realty-in-use row.
type Usage struct {
	Object   grid.Value `json:"use_obj"`
	Square   grid.Value `json:"use_sq"`
	Location grid.Value `json:"use_loc"`
}

// Vehicle is one transport row.
type Vehicle struct {
	Item grid.Value `json:"vehicle_item"`
	Pay  grid.Value `json:"vehicle_pay"`
}

// Record is one person as reconstructed from the sheet.
//
// RelativeOf and RelationType are zero until the record passes through the
// relationship linker. Once linked, Name of a dependent holds the relationship
// label (e.g. "супруга"), which is copied into RelationType.
type Record struct {
	// PRaw is the sequence number declared in the sheet.
	PRaw SeqNumber `json:"p_raw"`
	// P is the sequence number counted by the scanner, 1..N per group.
	P int `json:"p"`
	// PersonID is unique and increasing across the sheet, starting at 1.
	PersonID int `json:"person_id"`
	// PersonNum is the 1-based position within the group; 1 is the principal.
	PersonNum int `json:"person_num"`

	Start    grid.Address `json:"start"`
	End      grid.Address `json:"end"`
	Name     grid.Value   `json:"name"`
	Position grid.Value   `json:"position"`
	Income   grid.Value   `json:"income"`

	Ownership []Ownership `json:"ownership"`
	Usage     []Usage     `json:"usage"`
	Vehicle   []Vehicle   `json:"vehicle"`

	RelativeOf   *int       `json:"relativeOf"`
	RelationType grid.Value `json:"relationType"`
}

// IsPrincipal reports whether the record heads its group.
func (r Record) IsPrincipal() bool {
	return r.RelativeOf == nil
}

// Block is every record sharing one sequence number; Block[0] is the principal.
type Block []Record
