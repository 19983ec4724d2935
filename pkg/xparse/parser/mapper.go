package parser

import (
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/xparse-go/pkg/xparse/dictionary"
	"github.com/ukaji3/xparse-go/pkg/xparse/models"
)

// isRelationLabel reports whether a name cell holds a relationship rather than a person.
func isRelationLabel(name string) bool {
	switch name {
	case "супруг", "супруга", "несовершеннолетний ребенок", "несовершеннолетний ребёнок":
		return true
	}
	return false
}

// SetName returns the person's name, or nil for a linked dependent. A
// principal named like a relationship label points at a missing person and
// also yields nil.
func SetName(rec models.Record) *string {
	if !rec.IsPrincipal() {
		return nil
	}
	if isRelationLabel(rec.Name.String()) {
		log.Warn().Int("p", rec.P).Str("cell", rec.Start.String()).Msg("missing person")
		return nil
	}
	return rec.Name.Ptr()
}

// SetPosition returns the job title of a principal; dependents have none.
func SetPosition(rec models.Record) *string {
	if !rec.IsPrincipal() {
		return nil
	}
	return rec.Position.Ptr()
}

// SetIncome returns the raw income text when it is meaningful.
func SetIncome(rec models.Record) *string {
	if !IsMeaningful(rec.Income) {
		return nil
	}
	return rec.Income.Ptr()
}

// Mapper turns linked records into output documents.
type Mapper struct {
	dict *dictionary.Store
}

// NewMapper returns a mapper resolving codes through dict. A nil dict passes every value through.
func NewMapper(dict *dictionary.Store) *Mapper {
	if dict == nil {
		dict = dictionary.New(nil)
	}
	return &Mapper{dict: dict}
}

// Map builds the document for rec. It does not modify rec and returns the
// same document for the same input.
func (m *Mapper) Map(rec models.Record) models.Person {
	var realties []models.Realty
	for _, own := range rec.Ownership {
		if !IsMeaningful(own.Object) {
			log.Debug().Str("value", own.Object.String()).Msg("own_obj empty")
			continue
		}
		kind, part := ClassifyOwnership(own.Type)
		realties = append(realties, models.Realty{
			RealtyType:    models.RealtyOwned,
			ObjectType:    m.dict.Resolve(dictionary.ObjectType, own.Object.Ptr()),
			OwnershipType: m.dict.Resolve(dictionary.OwnershipType, kind),
			OwnershipPart: part,
			Square:        own.Square,
			Country:       m.dict.Resolve(dictionary.Country, own.Location.Ptr()),
		})
	}
	for _, use := range rec.Usage {
		if !IsMeaningful(use.Object) {
			log.Debug().Str("value", use.Object.String()).Msg("use_obj empty")
			continue
		}
		realties = append(realties, models.Realty{
			RealtyType: models.RealtyUsed,
			ObjectType: m.dict.Resolve(dictionary.ObjectType, use.Object.Ptr()),
			Square:     use.Square,
			Country:    m.dict.Resolve(dictionary.Country, use.Location.Ptr()),
		})
	}

	var transports []models.Transport
	for _, v := range rec.Vehicle {
		if !IsMeaningful(v.Item) {
			log.Debug().Str("value", v.Item.String()).Msg("transport empty")
			continue
		}
		transports = append(transports, models.Transport{TransportName: v.Item.String()})
	}

	return models.Person{
		ID:           rec.PersonID,
		Name:         SetName(rec),
		RelativeOf:   rec.RelativeOf,
		RelationType: m.dict.Resolve(dictionary.RelationType, rec.RelationType.Ptr()),
		Position:     SetPosition(rec),
		Realties:     realties,
		Transports:   transports,
		Income:       SetIncome(rec),
	}
}

// MapBlocks maps every record of every block, preserving order.
func (m *Mapper) MapBlocks(blocks []models.Block) [][]models.Person {
	out := make([][]models.Person, len(blocks))
	for i, block := range blocks {
		persons := make([]models.Person, len(block))
		for j, rec := range block {
			persons[j] = m.Map(rec)
		}
		out[i] = persons
	}
	return out
}
