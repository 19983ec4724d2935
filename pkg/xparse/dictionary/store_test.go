package dictionary

import (
	"errors"
	"strings"
	"testing"
)

const fixtureTOML = `
[objectType]
"квартира" = 7
"гараж" = 17
"не определено" = 0

[relationType]
"супруга" = 2
"супруг" = 1

[ownershipType]
"долевая" = 3
"индивидуальная" = 1

[country]
"грузия" = 2
"не определено" = 0
"россия" = "RU"
`

func fixtureStore(t *testing.T) *Store {
	t.Helper()
	s, err := LoadTOML(strings.NewReader(fixtureTOML))
	if err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	return s
}

func strPtr(s string) *string { return &s }

func TestResolve(t *testing.T) {
	s := fixtureStore(t)

	tests := []struct {
		value    string
		category string
		expected Value
	}{
		{"квартира", ObjectType, Code(7)},
		{"Гараж", ObjectType, Code(17)},
		{"не определено", ObjectType, Code(0)},
		{"супруга", RelationType, Code(2)},
		{"долевая", OwnershipType, Code(3)},
		{"Грузия", Country, Code(2)},
		{"  Россия ", Country, Text("RU")},
		{"Кафиристан", Country, Text("Кафиристан")},
		{"не определено", Country, Code(0)},
		{"Квартира", "missing_dictionary", Text("Квартира")},
	}

	for _, tt := range tests {
		result := s.Resolve(tt.category, strPtr(tt.value))
		if result != tt.expected {
			t.Errorf("Resolve(%q, %q) = %#v, expected %#v", tt.category, tt.value, result, tt.expected)
		}
	}
}

func TestResolveNil(t *testing.T) {
	s := fixtureStore(t)
	if v := s.Resolve(ObjectType, nil); !v.IsNull() {
		t.Errorf("expected null, got %#v", v)
	}
}

func TestResolveMissKeepsOriginalText(t *testing.T) {
	s := fixtureStore(t)
	raw := "  Дача  "
	if v := s.Resolve(ObjectType, &raw); v.String() != raw {
		t.Errorf("expected original %q, got %q", raw, v.String())
	}
}

func TestTermsAndLen(t *testing.T) {
	s := fixtureStore(t)
	if s.Len(RelationType) != 2 {
		t.Errorf("expected 2 relation types, got %d", s.Len(RelationType))
	}
	terms := s.Terms(RelationType)
	if len(terms) != 2 || terms[0] != "супруг" || terms[1] != "супруга" {
		t.Errorf("unexpected terms %v", terms)
	}
}

func TestValueString(t *testing.T) {
	if Code(7).String() != "7" {
		t.Error("code should render as its number")
	}
	if Null().String() != "" {
		t.Error("null should render empty")
	}
	if n, ok := Code(3).Int(); !ok || n != 3 {
		t.Errorf("Int() = (%d, %v)", n, ok)
	}
	if _, ok := Text("x").Int(); ok {
		t.Error("text must not report an int")
	}
}

func TestCheck(t *testing.T) {
	s := fixtureStore(t)
	if err := s.Check(Country); err != nil {
		t.Errorf("Check(country) = %v", err)
	}
	if err := s.Check("planets"); !errors.Is(err, ErrUnknownDictionary) {
		t.Errorf("expected ErrUnknownDictionary, got %v", err)
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{Null(), "null"},
		{Code(2), "2"},
		{Text("a & <b>"), `"a & <b>"`},
	}
	for _, tt := range tests {
		data, err := tt.value.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if string(data) != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, data)
		}
	}
}
