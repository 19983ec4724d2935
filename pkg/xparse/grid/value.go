package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/ukaji3/xparse-go/pkg/xparse/textnorm"
)

// Kind classifies a cell value.
type Kind uint8

const (
	// KindEmpty marks an absent cell.
	KindEmpty Kind = iota
	// KindText marks a string cell.
	KindText
	// KindNumber marks a numeric cell.
	KindNumber
)

// Value is a cell value: text, number, or absent.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Empty returns the absent value.
func Empty() Value { return Value{} }

// Text returns a text value. The empty string is treated as absent.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// FromAny converts a decoded cell value (string, integer, float, bool or nil).
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case Value:
		return t
	case string:
		return Text(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case bool:
		if t {
			return Number(1)
		}
		return Number(0)
	default:
		return Text(fmt.Sprint(t))
	}
}

// parseValue mirrors how numbers come back from raw cell storage:
// integers and decimals become numbers, everything else stays text.
func parseValue(s string) Value {
	if s == "" {
		return Value{}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Number(float64(i))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Number(f)
	}
	return Text(s)
}

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the cell is absent.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// Truthy reports whether the cell holds a non-blank string or a non-zero number.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindText:
		return v.text != ""
	case KindNumber:
		return v.num != 0
	default:
		return false
	}
}

// Float returns the numeric value and whether the cell is numeric.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String renders the value as text; numbers use the shortest exact form ("123", "200.00001").
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Ptr returns nil for an absent cell and the rendered text otherwise.
func (v Value) Ptr() *string {
	if v.kind == KindEmpty {
		return nil
	}
	s := v.String()
	return &s
}

// Normalized case-folds the rendered value and collapses internal whitespace.
func (v Value) Normalized() string {
	return textnorm.Collapse(v.String())
}

// MarshalJSON encodes absent cells as null and numbers as JSON numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return marshalUnescaped(v.text)
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
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
