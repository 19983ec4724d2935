// Package dictionary maps free-text category labels to canonical codes.
//
// Lookups are case-insensitive and whitespace-trimmed. A miss is not an
// error: Resolve logs a warning and passes the original text through, so a
// partially populated dictionary still yields usable output.
package dictionary

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/xparse-go/pkg/xparse/textnorm"
)

// Category names used by the document mapper.
const (
	ObjectType    = "objectType"
	RelationType  = "relationType"
	OwnershipType = "ownershipType"
	Country       = "country"
	NoneValues    = "none_values"
)

// Categories lists the known categories in load order.
var Categories = []string{RelationType, ObjectType, OwnershipType, Country, NoneValues}

// ErrUnknownDictionary indicates a category that was never loaded.
var ErrUnknownDictionary = errors.New("unknown dictionary")

// Store holds category name -> normalized term -> canonical value.
type Store struct {
	categories map[string]map[string]Value
}

// New builds a store, normalizing every term.
func New(categories map[string]map[string]Value) *Store {
	s := &Store{categories: make(map[string]map[string]Value, len(categories))}
	for name, terms := range categories {
		for term, v := range terms {
			s.Add(name, term, v)
		}
	}
	return s
}

// Add registers term in category, replacing any previous mapping.
func (s *Store) Add(category, term string, v Value) {
	terms, ok := s.categories[category]
	if !ok {
		terms = make(map[string]Value)
		s.categories[category] = terms
	}
	terms[textnorm.Fold(term)] = v
}

// Lookup returns the canonical value for term.
func (s *Store) Lookup(category, term string) (Value, bool) {
	terms, ok := s.categories[category]
	if !ok {
		return Value{}, false
	}
	v, ok := terms[textnorm.Fold(term)]
	return v, ok
}

// Resolve maps raw to its canonical value. A nil raw yields Null; a miss
// logs a warning and returns the original, unnormalized text.
func (s *Store) Resolve(category string, raw *string) Value {
	if raw == nil {
		return Null()
	}
	if v, ok := s.Lookup(category, *raw); ok {
		return v
	}
	log.Warn().Str("value", *raw).Str("dictionary", category).Msg("value not in dictionary")
	return Text(*raw)
}

// Check returns ErrUnknownDictionary if category holds no terms.
func (s *Store) Check(category string) error {
	if _, ok := s.categories[category]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDictionary, category)
	}
	return nil
}

// Terms returns the normalized terms of category, sorted.
func (s *Store) Terms(category string) []string {
	terms := make([]string, 0, len(s.categories[category]))
	for term := range s.categories[category] {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Len returns the number of terms in category.
func (s *Store) Len(category string) int {
	return len(s.categories[category])
}
