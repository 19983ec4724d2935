package xparse

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/xparse-go/pkg/xparse/dictionary"
	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
)

// writeDeclaration saves a two-group declaration workbook and returns its path.
func writeDeclaration(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	cells := map[string]any{
		"A1": "№", "B1": "ФИО",
		"A2": 1, "B2": "Иванов Иван Иванович", "C2": "глава", "D2": 1031691.85,
		"E2": "квартира", "F2": "долевая 1/4", "G2": 45.5, "H2": "Россия",
		"A3": 2, "B3": "Петров П.П.", "D3": "не имеет",
		"B4": "супруга", "I4": "гараж", "J4": 18, "K4": "Россия",
	}
	for ref, v := range cells {
		f.SetCellValue(sheetName, ref, v)
	}

	path := filepath.Join(t.TempDir(), "declaration.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func testDictionary() *dictionary.Store {
	return dictionary.New(map[string]map[string]dictionary.Value{
		dictionary.ObjectType:    {"квартира": dictionary.Code(7), "гараж": dictionary.Code(17)},
		dictionary.OwnershipType: {"долевая": dictionary.Code(3)},
		dictionary.RelationType:  {"супруга": dictionary.Code(2)},
		dictionary.Country:       {"россия": dictionary.Code(1)},
	})
}

func TestExtract(t *testing.T) {
	path := writeDeclaration(t)

	res, err := Extract(path, Options{ColumnRange: "A2:A4", Dictionary: testDictionary(), RunID: "run-1"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if res.RunID != "run-1" || res.SheetName != "Sheet1" || res.Source != "declaration.xlsx" {
		t.Errorf("unexpected metadata %q %q %q", res.RunID, res.SheetName, res.Source)
	}
	if len(res.Checksum) != 16 {
		t.Errorf("expected 16 hex digits, got %q", res.Checksum)
	}
	if len(res.Blocks) != 2 || len(res.Documents) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(res.Blocks))
	}
	if res.PersonCount() != 3 || len(res.Records) != 3 {
		t.Errorf("expected 3 persons, got %d", res.PersonCount())
	}
	if _, ok := res.Mismatch(); ok {
		t.Error("numbering should agree")
	}

	principal := res.Documents[0][0]
	if len(principal.Realties) != 1 {
		t.Fatalf("expected 1 realty, got %d", len(principal.Realties))
	}
	realty := principal.Realties[0]
	if realty.ObjectType != dictionary.Code(7) || realty.OwnershipType != dictionary.Code(3) ||
		realty.OwnershipPart == nil || *realty.OwnershipPart != "1/4" {
		t.Errorf("unexpected realty %+v", realty)
	}

	spouse := res.Documents[1][1]
	if spouse.RelativeOf == nil || *spouse.RelativeOf != 2 || spouse.RelationType != dictionary.Code(2) {
		t.Errorf("unexpected spouse %+v", spouse)
	}
	if len(spouse.Realties) != 1 || spouse.Realties[0].ObjectType != dictionary.Code(17) {
		t.Errorf("unexpected spouse realties %+v", spouse.Realties)
	}
}

func TestExtractChecksumStable(t *testing.T) {
	path := writeDeclaration(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	res, err := Extract(path, Options{ColumnRange: "A2:A4"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if res.Checksum != Checksum(data) {
		t.Errorf("checksum %s != %s", res.Checksum, Checksum(data))
	}
}

func TestExtractErrors(t *testing.T) {
	path := writeDeclaration(t)

	if _, err := Extract(filepath.Join(t.TempDir(), "missing.xlsx"), Options{ColumnRange: "A2:A4"}); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}

	_, err := Extract(path, Options{ColumnRange: "A1 :A2"})
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) || extractionErr.Component != ComponentRange {
		t.Errorf("expected range ExtractionError, got %v", err)
	}
	if !errors.Is(err, grid.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}

	if _, err := Extract(path, Options{ColumnRange: "A2:A4", Sheet: "Missing"}); !errors.Is(err, grid.ErrSheetNotFound) {
		t.Errorf("expected ErrSheetNotFound, got %v", err)
	}

	garbage := filepath.Join(t.TempDir(), "garbage.xlsx")
	if err := os.WriteFile(garbage, []byte("not a workbook"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Extract(garbage, Options{ColumnRange: "A2:A4"}); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestExtractGridGeneratesRunID(t *testing.T) {
	g := grid.NewMemory()
	_ = g.Put("A2", 1)
	_ = g.Put("B2", "Иванов")

	res, err := ExtractGrid(g, Options{ColumnRange: "A2:A2"})
	if err != nil {
		t.Fatalf("ExtractGrid failed: %v", err)
	}
	if res.RunID == "" {
		t.Error("expected a generated run id")
	}
	if res.Documents[0][0].Name == nil || *res.Documents[0][0].Name != "Иванов" {
		t.Errorf("unexpected document %+v", res.Documents[0][0])
	}
}
