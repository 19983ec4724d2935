package xparse

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound indicates the declaration workbook does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
	ErrInvalidFormat = errors.New("invalid xlsx format")
)

// Pipeline stages reported by ExtractionError.
const (
	// ComponentWorkbook fails when the xlsx container cannot be decoded.
	ComponentWorkbook = "workbook"
	// ComponentSheet fails when the requested worksheet is missing.
	ComponentSheet = "sheet"
	// ComponentRange fails on a malformed or unusable sequence-number range.
	ComponentRange = "range"
	// ComponentSource fails when a remote spreadsheet cannot be fetched.
	ComponentSource = "source"
)

// ExtractionError ties a failure to the worksheet and pipeline stage that
// produced it. Errors from the parsing stages themselves are never fatal and
// are logged instead.
type ExtractionError struct {
	SheetName string
	Component string
	Err       error
}

func (e *ExtractionError) Error() string {
	sheet := e.SheetName
	if sheet == "" {
		sheet = "<first>"
	}
	return fmt.Sprintf("%s: sheet %q: %v", e.Component, sheet, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError wraps err for the given sheet and Component* stage.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{SheetName: sheetName, Component: component, Err: err}
}
