package dictionary

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type valueKind uint8

const (
	kindNull valueKind = iota
	kindCode
	kindText
)

// Value is a resolved dictionary entry: an integer code, a pass-through string, or null.
type Value struct {
	kind valueKind
	code int
	text string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Code returns an integer code.
func Code(n int) Value { return Value{kind: kindCode, code: n} }

// Text returns a string value.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == kindNull }

// Int returns the integer code and whether the value is one.
func (v Value) Int() (int, bool) { return v.code, v.kind == kindCode }

// String renders the value; null renders as "".
func (v Value) String() string {
	switch v.kind {
	case kindCode:
		return strconv.Itoa(v.code)
	case kindText:
		return v.text
	default:
		return ""
	}
}

// MarshalJSON encodes codes as numbers, strings as strings and null as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindCode:
		return json.Marshal(v.code)
	case kindText:
		return marshalUnescaped(v.text)
	default:
		return []byte("null"), nil
	}
}

// parseValue turns a raw dictionary code into a Value, preferring integers when convert is set.
func parseValue(raw string, convert bool) Value {
	if convert {
		if n, err := strconv.Atoi(raw); err == nil {
			return Code(n)
		}
	}
	return Text(raw)
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
