package models

import (
	"bytes"
	"encoding/json"

	"github.com/ukaji3/xparse-go/pkg/xparse/dictionary"
	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
)

// RealtyType distinguishes owned from used realty.
type RealtyType int

const (
	// RealtyOwned marks realty held in ownership.
	RealtyOwned RealtyType = 1
	// RealtyUsed marks realty held in use.
	RealtyUsed RealtyType = 2
)

// Realty is one owned or used property.
type Realty struct {
	RealtyType RealtyType       `json:"realtyType"`
	ObjectType dictionary.Value `json:"objectType"`
	// OwnershipType and OwnershipPart are only meaningful for RealtyOwned.
	OwnershipType dictionary.Value `json:"ownershipType"`
	OwnershipPart *string          `json:"ownershipPart"`
	Square        grid.Value       `json:"square"`
	Country       dictionary.Value `json:"country"`
}

// MarshalJSON leaves the ownership fields out of used realty.
func (r Realty) MarshalJSON() ([]byte, error) {
	type plain Realty
	if r.RealtyType == RealtyOwned {
		return marshalUnescaped(plain(r))
	}
	return marshalUnescaped(struct {
		RealtyType RealtyType       `json:"realtyType"`
		ObjectType dictionary.Value `json:"objectType"`
		Square     grid.Value       `json:"square"`
		Country    dictionary.Value `json:"country"`
	}{r.RealtyType, r.ObjectType, r.Square, r.Country})
}

// Transport is one vehicle.
type Transport struct {
	TransportName string `json:"transportName"`
}

// Person is the output document emitted per record. Empty Realties and
// Transports are nil, never empty slices.
type Person struct {
	ID            int              `json:"id"`
	Name          *string          `json:"name"`
	RelativeOf    *int             `json:"relativeOf"`
	RelationType  dictionary.Value `json:"relationType"`
	Position      *string          `json:"position"`
	Realties      []Realty         `json:"realties"`
	Transports    []Transport      `json:"transports"`
	Income        *string          `json:"income"`
	IncomeComment *string          `json:"incomeComment"`
	IncomeSource  *string          `json:"incomeSource"`
}

// marshalUnescaped encodes v like json.Marshal but leaves <, > and & as is.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
