package xparse

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"github.com/zeebo/xxh3"

	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
	"github.com/ukaji3/xparse-go/pkg/xparse/models"
	"github.com/ukaji3/xparse-go/pkg/xparse/parser"
)

// Result is the outcome of one extraction run.
type Result struct {
	RunID     string
	Source    string
	SheetName string
	Range     grid.Range
	// Checksum is the hex xxh3 digest of the input.
	Checksum string
	// Records are the linked person records in sheet order.
	Records []models.Record
	// Blocks groups Records by sequence number.
	Blocks []models.Block
	// Documents are the mapped output documents, parallel to Blocks.
	Documents [][]models.Person
}

// PersonCount returns the number of documents across all blocks.
func (r *Result) PersonCount() int {
	n := 0
	for _, block := range r.Documents {
		n += len(block)
	}
	return n
}

// Mismatch returns the first disagreement between counted and declared numbering.
func (r *Result) Mismatch() (parser.Mismatch[string], bool) {
	return parser.NumberingMismatch(r.Records)
}

// Checksum returns the hex xxh3 digest of data.
func Checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(data))
}

// Workbook is an opened xlsx file positioned on one worksheet.
type Workbook struct {
	file  *excelize.File
	Sheet *grid.Sheet
	// Checksum is the hex xxh3 digest of the file contents.
	Checksum string
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// OpenWorkbook opens the xlsx file at path and selects sheet, or the first
// sheet when sheet is empty.
func OpenWorkbook(path, sheet string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, NewExtractionError(sheet, ComponentWorkbook, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	ws, err := grid.NewSheet(f, sheet)
	if err != nil {
		f.Close()
		return nil, NewExtractionError(sheet, ComponentSheet, err)
	}
	return &Workbook{file: f, Sheet: ws, Checksum: Checksum(data)}, nil
}

// Extract parses the declaration sheet of the xlsx file at path.
func Extract(path string, opts Options) (*Result, error) {
	wb, err := OpenWorkbook(path, opts.Sheet)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	res, err := ExtractGrid(wb.Sheet, opts)
	if err != nil {
		return nil, NewExtractionError(wb.Sheet.Name(), ComponentRange, err)
	}
	res.Source = filepath.Base(path)
	res.SheetName = wb.Sheet.Name()
	res.Checksum = wb.Checksum
	return res, nil
}

// ExtractGrid runs the pipeline over g: scan and assemble records, partition
// them into blocks, link relationships and map documents.
func ExtractGrid(g grid.Grid, opts Options) (*Result, error) {
	r, err := grid.ParseRange(opts.ColumnRange)
	if err != nil {
		return nil, err
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	records := parser.New(g).ParsePersons(r)
	blocks := parser.LinkRelations(parser.PartitionIntoBlocks(records))
	documents := parser.NewMapper(opts.Dictionary).MapBlocks(blocks)

	linked := make([]models.Record, 0, len(records))
	for _, block := range blocks {
		linked = append(linked, block...)
	}

	res := &Result{
		RunID:     runID,
		Range:     r,
		Records:   linked,
		Blocks:    blocks,
		Documents: documents,
	}
	log.Debug().
		Str("run_id", runID).
		Int("blocks", len(blocks)).
		Int("persons", res.PersonCount()).
		Msg("extraction finished")
	return res, nil
}
