package parser

import (
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
	"github.com/ukaji3/xparse-go/pkg/xparse/models"
)

// hasDetail reports whether the cell right of a blank object cell holds data.
func hasDetail(v grid.Value) bool {
	return !v.IsEmpty() && v.String() != "-"
}

// rows yields each row address of slot shifted by offset columns.
func rows(slot Slot, offset int) ([]grid.Address, error) {
	r, err := slot.Range().Shift(offset)
	if err != nil {
		return nil, err
	}
	addrs := make([]grid.Address, 0, r.End.Row-r.Start.Row+1)
	for row := r.Start.Row; row <= r.End.Row; row++ {
		addrs = append(addrs, grid.Address{Col: r.Start.Col, Row: row})
	}
	return addrs, nil
}

// parseOwnership reads object, type, square and location cells per row.
// A blank object with a filled type cell is recovered as PlaceholderObject;
// this guesses at the sheet layout and is not guaranteed to be right.
func (p *Parser) parseOwnership(slot Slot) ([]models.Ownership, error) {
	addrs, err := rows(slot, ownershipOffset)
	if err != nil {
		return nil, err
	}
	var list []models.Ownership
	for _, addr := range addrs {
		cells, err := p.rowCells(addr, 4)
		if err != nil {
			return nil, err
		}
		obj := cells[0]
		if !obj.Truthy() {
			if !hasDetail(cells[1]) {
				continue
			}
			log.Warn().Str("cell", addr.String()).Msg("value missing")
			obj = grid.Text(PlaceholderObject)
		}
		list = append(list, models.Ownership{
			Object:   obj,
			Type:     cells[1],
			Square:   cells[2],
			Location: cells[3],
		})
	}
	return list, nil
}

// parseUsage reads object, square and location cells per row, with the same
// placeholder recovery as parseOwnership.
func (p *Parser) parseUsage(slot Slot) ([]models.Usage, error) {
	addrs, err := rows(slot, usageOffset)
	if err != nil {
		return nil, err
	}
	var list []models.Usage
	for _, addr := range addrs {
		cells, err := p.rowCells(addr, 3)
		if err != nil {
			return nil, err
		}
		obj := cells[0]
		if !obj.Truthy() {
			if !hasDetail(cells[1]) {
				continue
			}
			log.Warn().Str("cell", addr.String()).Msg("value missing")
			obj = grid.Text(PlaceholderObject)
		}
		list = append(list, models.Usage{
			Object:   obj,
			Square:   cells[1],
			Location: cells[2],
		})
	}
	return list, nil
}

// parseVehicle reads item and payment cells per row. A blank item next to a
// filled payment cell is only logged.
func (p *Parser) parseVehicle(slot Slot) ([]models.Vehicle, error) {
	addrs, err := rows(slot, vehicleOffset)
	if err != nil {
		return nil, err
	}
	var list []models.Vehicle
	for _, addr := range addrs {
		cells, err := p.rowCells(addr, 2)
		if err != nil {
			return nil, err
		}
		if !cells[0].Truthy() {
			if hasDetail(cells[1]) {
				log.Warn().Str("cell", addr.String()).Msg("value missing")
			}
			continue
		}
		list = append(list, models.Vehicle{Item: cells[0], Pay: cells[1]})
	}
	return list, nil
}
