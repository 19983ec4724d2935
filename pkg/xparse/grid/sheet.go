package grid

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// Sheet is a Grid backed by one worksheet of an excelize workbook.
type Sheet struct {
	f    *excelize.File
	name string
}

// NewSheet wraps the named worksheet. An empty name selects the first sheet.
func NewSheet(f *excelize.File, name string) (*Sheet, error) {
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrSheetNotFound
		}
		name = sheets[0]
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return &Sheet{f: f, name: name}, nil
}

// Name returns the worksheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Value implements Grid. String cells and string formula results stay text
// even when they look numeric.
func (s *Sheet) Value(addr Address) Value {
	ref := addr.String()
	raw, err := s.f.GetCellValue(s.name, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		log.Debug().Err(err).Str("cell", ref).Msg("read cell")
		return Value{}
	}
	if raw == "" {
		return Value{}
	}
	typ, err := s.f.GetCellType(s.name, ref)
	if err == nil {
		switch typ {
		// CellTypeFormula is a cached string result (t="str"); numeric results stay numbers.
		case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
			return Text(raw)
		}
	}
	return parseValue(raw)
}

// MaxRow returns the number of rows holding data.
func (s *Sheet) MaxRow() int {
	rows, err := s.f.GetRows(s.name)
	if err != nil {
		return 0
	}
	return len(rows)
}
