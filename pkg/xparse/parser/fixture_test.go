package parser

import (
	"testing"

	"github.com/ukaji3/xparse-go/pkg/xparse/dictionary"
	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
)

// declarationGrid builds three groups holding one, two and one person.
//
//	A  p | B name | C position | D income | E-H ownership | I-K usage | L-M vehicle
func declarationGrid(t *testing.T) *grid.Memory {
	t.Helper()
	cells := map[string]any{
		"A2": 1, "B2": "Иванов Иван Иванович", "C2": "глава", "D2": 1031691.85,
		"E2": "квартира", "F2": "индивидуальная", "G2": 45.5, "H2": "Россия",
		"I2": "-", "L2": "Автомобиль легковой:",
		"E3": "гараж", "F3": "1/2 доли", "G3": 18, "H3": "Россия", "L3": "тойота королла",

		"A4": "2.", "B4": "Петров П.П.", "C4": "заместитель", "D4": "941951",
		"E4": "-", "I4": "квартира", "J4": 60, "K4": "Россия",
		"A5": " - ", "B5": "супруга", "D5": "не имеет",
		"F5": "совместная", "G5": 12, "H5": "Россия",

		"A6": 3, "B6": "Сидоров С.С.", "C6": "начальник", "D6": 500000,
		"L6": "мотоцикл", "M6": "-",
		"M7": "Урал",
	}
	g := grid.NewMemory()
	for ref, v := range cells {
		if err := g.Put(ref, v); err != nil {
			t.Fatalf("Put(%s): %v", ref, err)
		}
	}
	return g
}

func fixtureDictionary() *dictionary.Store {
	return dictionary.New(map[string]map[string]dictionary.Value{
		dictionary.ObjectType: {
			"квартира":      dictionary.Code(7),
			"гараж":         dictionary.Code(17),
			"иное":          dictionary.Code(0),
			"не определено": dictionary.Code(0),
		},
		dictionary.RelationType: {
			"супруг":  dictionary.Code(1),
			"супруга": dictionary.Code(2),
		},
		dictionary.OwnershipType: {
			"индивидуальная": dictionary.Code(1),
			"совместная":     dictionary.Code(2),
			"долевая":        dictionary.Code(3),
		},
		dictionary.Country: {
			"россия": dictionary.Code(1),
		},
	})
}

func mustRange(t *testing.T, s string) grid.Range {
	t.Helper()
	r, err := grid.ParseRange(s)
	if err != nil {
		t.Fatalf("ParseRange(%q): %v", s, err)
	}
	return r
}

func strPtr(s string) *string { return &s }
