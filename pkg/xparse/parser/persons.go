package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
	"github.com/ukaji3/xparse-go/pkg/xparse/models"
)

// Column offsets relative to the name column.
const (
	positionOffset  = 1
	incomeOffset    = 2
	ownershipOffset = 3
	usageOffset     = 7
	vehicleOffset   = 10
)

// PlaceholderObject replaces a missing object cell when the row still has details.
const PlaceholderObject = "иное"

// seqTrimChars is stripped from declared sequence numbers ("1.", "(2)").
const seqTrimChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ "

// Parser reads person records from a grid.
type Parser struct {
	grid grid.Grid
}

// New returns a parser reading from g.
func New(g grid.Grid) *Parser {
	return &Parser{grid: g}
}

// ParsePersons reconstructs every person in r. The first column of r holds
// declared sequence numbers, the next one names.
//
// Person IDs are assigned 1..N across the sheet and PersonNum restarts at 1
// per group. A group whose name anchor is blank is skipped. A disagreement
// between counted and declared numbering is logged; counted numbers win.
func (p *Parser) ParsePersons(r grid.Range) []models.Record {
	log.Info().Str("start", r.Start.String()).Str("end", r.End.String()).Msg("parsing persons")

	var records []models.Record
	personID := 1
	for i, group := range ScanSlots(p.grid, r.Start, r.End) {
		seq := i + 1
		declared := parseSeqNumber(group.Value)

		names, err := group.Range().Shift(1)
		if err != nil {
			continue
		}
		anchor := p.grid.Value(names.Start)
		if !anchor.Truthy() {
			log.Warn().Str("cell", names.Start.String()).Str("value", anchor.String()).Msg("person missing, group skipped")
			continue
		}

		personNum := 1
		for _, slot := range ScanSlots(p.grid, names.Start, names.End) {
			rec, err := p.parsePerson(slot)
			if err != nil {
				log.Error().Err(err).Str("cell", slot.Start.String()).Msg("error while parsing person")
				continue
			}
			rec.PRaw = declared
			rec.P = seq
			rec.PersonID = personID
			rec.PersonNum = personNum
			records = append(records, rec)
			personID++
			personNum++
		}
	}

	if m, ok := NumberingMismatch(records); ok {
		log.Warn().Str("at", m.String()).Msg("P numbering mismatch")
	}
	return records
}

// NumberingMismatch compares the counted sequence numbers of records with the
// declared ones and returns the first disagreement.
func NumberingMismatch(records []models.Record) (Mismatch[string], bool) {
	counted := make([]string, len(records))
	declared := make([]string, len(records))
	for i, rec := range records {
		counted[i] = strconv.Itoa(rec.P)
		declared[i] = rec.PRaw.String()
	}
	return CheckListsMismatch(counted, declared)
}

func (p *Parser) parsePerson(slot Slot) (models.Record, error) {
	position, err := p.cellAt(slot.Start, positionOffset)
	if err != nil {
		return models.Record{}, err
	}
	income, err := p.cellAt(slot.Start, incomeOffset)
	if err != nil {
		return models.Record{}, err
	}
	ownership, err := p.parseOwnership(slot)
	if err != nil {
		return models.Record{}, err
	}
	usage, err := p.parseUsage(slot)
	if err != nil {
		return models.Record{}, err
	}
	vehicles, err := p.parseVehicle(slot)
	if err != nil {
		return models.Record{}, err
	}
	return models.Record{
		Start:     slot.Start,
		End:       slot.End,
		Name:      slot.Value,
		Position:  position,
		Income:    income,
		Ownership: ownership,
		Usage:     usage,
		Vehicle:   vehicles,
	}, nil
}

func (p *Parser) cellAt(addr grid.Address, offset int) (grid.Value, error) {
	shifted, err := addr.Shift(offset)
	if err != nil {
		return grid.Value{}, err
	}
	return p.grid.Value(shifted), nil
}

// rowCells reads n adjacent cells starting at addr.
func (p *Parser) rowCells(addr grid.Address, n int) ([]grid.Value, error) {
	if _, err := addr.Shift(n - 1); err != nil {
		return nil, err
	}
	values := make([]grid.Value, n)
	for i := range values {
		values[i] = p.grid.Value(grid.Address{Col: addr.Col + i, Row: addr.Row})
	}
	return values, nil
}

// parseSeqNumber strips punctuation from a declared sequence number and parses it.
func parseSeqNumber(v grid.Value) models.SeqNumber {
	raw := strings.Trim(v.String(), seqTrimChars)
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str("p", v.String()).Msg("strange P numbering")
		return models.SeqNumber{Raw: raw}
	}
	return models.SeqNumber{Value: n, Raw: raw, Valid: true}
}

// Mismatch is the first differing pair of two sequences. A nil side means
// that sequence ended first.
type Mismatch[T any] struct {
	A *T
	B *T
}

// String renders the pair as "(a, b)" with "None" for a missing side.
func (m Mismatch[T]) String() string {
	side := func(v *T) string {
		if v == nil {
			return "None"
		}
		return fmt.Sprint(*v)
	}
	return "(" + side(m.A) + ", " + side(m.B) + ")"
}

// CheckListsMismatch compares a and b position by position up to the longer
// length and returns the first differing pair.
func CheckListsMismatch[T comparable](a, b []T) (Mismatch[T], bool) {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		var m Mismatch[T]
		if i < len(a) {
			m.A = &a[i]
		}
		if i < len(b) {
			m.B = &b[i]
		}
		if m.A == nil || m.B == nil || *m.A != *m.B {
			return m, true
		}
	}
	return Mismatch[T]{}, false
}
