package parser

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
	"github.com/ukaji3/xparse-go/pkg/xparse/textnorm"
)

// Canonical ownership categories, as used for ownershipType dictionary lookups.
const (
	OwnershipShared     = "долевая"
	OwnershipIndividual = "индивидуальная"
	OwnershipJoint      = "совместная"
)

// emptyValues are placeholders meaning "nothing here", compared after normalization.
var emptyValues = map[string]struct{}{
	"-":        {},
	"":         {},
	" ":        {},
	"не имеет": {},
}

// headerLabels are vehicle section headers that sheets place in data cells.
var headerLabels = map[string]struct{}{
	"автомобиль легковой:":        {},
	"автомобили легковые:":        {},
	"автоприцеп:":                 {},
	"автоприцепы:":                {},
	"водный транспорт:":           {},
	"мототранспортные средства:":  {},
	"мототранспортное средство:":  {},
	"иные транспортные средства:": {},
}

var fractionPattern = regexp.MustCompile(`[0-9]+\s?[,/.]\s?[0-9]+|[0-9]+`)

// IsMeaningful reports whether a cell carries data rather than a placeholder
// or a section header. Numbers are always meaningful.
func IsMeaningful(v grid.Value) bool {
	if v.IsEmpty() {
		return false
	}
	s := v.Normalized()
	if _, ok := emptyValues[s]; ok {
		return false
	}
	if _, ok := headerLabels[s]; ok {
		return false
	}
	return true
}

// ExtractFraction returns the first "n/m", "n,m", "n.m" or bare integer in s,
// with spaces removed. Without a match s is returned unchanged.
//
// At most one space is allowed on each side of the separator; anything else
// truncates to the first number ("1 /. 3" gives "1").
func ExtractFraction(s string) string {
	found := fractionPattern.FindString(s)
	if found == "" {
		return s
	}
	return strings.ReplaceAll(found, " ", "")
}

// ClassifyOwnership maps a free-text ownership type to a canonical category.
// The checks run in a fixed order: shared ("дол", with its fraction),
// individual ("инд"), joint ("местн"). Unmatched text is returned as is.
// An absent or numeric input is returned unclassified with a warning.
func ClassifyOwnership(raw grid.Value) (kind *string, part *string) {
	if raw.IsEmpty() {
		log.Warn().Msg("ownership type missing")
		return nil, nil
	}
	text := raw.String()
	if _, isNumber := raw.Float(); isNumber {
		log.Warn().Str("ownership", text).Msg("ownership invalid")
		return &text, nil
	}

	folded := textnorm.Fold(text)
	var category string
	switch {
	case strings.Contains(folded, "дол"):
		fraction := ExtractFraction(text)
		category, part = OwnershipShared, &fraction
	case strings.Contains(folded, "инд"):
		category = OwnershipIndividual
	case strings.Contains(folded, "местн"):
		category = OwnershipJoint
	default:
		log.Info().Str("ownership", text).Msg("ownership unknown")
		return &text, nil
	}
	log.Debug().Str("ownership", text).Str("category", category).Msg("ownership matched")
	return &category, part
}
