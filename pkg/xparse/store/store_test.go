package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ukaji3/xparse-go/pkg/xparse/dictionary"
	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
	"github.com/ukaji3/xparse-go/pkg/xparse/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "xparse.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func sampleBlocks() [][]models.Person {
	principal := 1
	return [][]models.Person{
		{
			{
				ID:       1,
				Name:     strPtr("Иванов И.И."),
				Position: strPtr("глава"),
				Realties: []models.Realty{
					{RealtyType: models.RealtyOwned, ObjectType: dictionary.Code(7), OwnershipType: dictionary.Code(3),
						OwnershipPart: strPtr("1/2"), Square: grid.Number(45.5), Country: dictionary.Code(1)},
					{RealtyType: models.RealtyUsed, ObjectType: dictionary.Text("Дача"), Square: grid.Text("60 кв.м"), Country: dictionary.Null()},
				},
				Transports: []models.Transport{{TransportName: "тойота"}, {TransportName: "Урал"}},
				Income:     strPtr("1031691.85"),
			},
			{ID: 2, RelativeOf: &principal, RelationType: dictionary.Code(2)},
		},
		{
			{ID: 3, Name: strPtr("Петров П.П.")},
		},
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := Run{ID: "run-1", Source: "book.xlsx", Sheet: "Sheet1", ColumnRange: "A2:A7", Checksum: "abc"}
	if err := s.SaveRun(ctx, run, sampleBlocks()); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Blocks != 2 || got.Persons != 3 || got.Source != "book.xlsx" || got.CreatedAt.IsZero() {
		t.Errorf("unexpected run %+v", got)
	}

	blocks, err := s.Persons(ctx, "run-1")
	if err != nil {
		t.Fatalf("Persons failed: %v", err)
	}
	if !reflect.DeepEqual(blocks, sampleBlocks()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", blocks, sampleBlocks())
	}
}

func TestRunsByChecksum(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "new"} {
		run := Run{ID: id, Source: "book.xlsx", Checksum: "same", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := s.SaveRun(ctx, run, nil); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", id, err)
		}
	}
	if err := s.SaveRun(ctx, Run{ID: "other", Checksum: "different"}, nil); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	runs, err := s.RunsByChecksum(ctx, "same")
	if err != nil {
		t.Fatalf("RunsByChecksum failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "new" || runs[1].ID != "old" {
		t.Errorf("unexpected runs %+v", runs)
	}
	if !runs[0].CreatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("unexpected created_at %v", runs[0].CreatedAt)
	}
}

func TestSaveRunDuplicateIDRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveRun(ctx, Run{ID: "dup"}, sampleBlocks()); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if err := s.SaveRun(ctx, Run{ID: "dup"}, sampleBlocks()); err == nil {
		t.Fatal("expected duplicate run id to fail")
	}
	blocks, err := s.Persons(ctx, "dup")
	if err != nil {
		t.Fatalf("Persons failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Errorf("expected the first run intact, got %d blocks", len(blocks))
	}
}

func TestSaveRunRequiresID(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveRun(context.Background(), Run{}, nil); err == nil {
		t.Error("expected an error for a missing run id")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xparse.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d failed: %v", i+1, err)
		}
		_ = s.Close()
	}
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n"
	if got := extractUpMigration(content); got != "\nCREATE TABLE a (x);\n" {
		t.Errorf("unexpected up section %q", got)
	}
}

func TestOpenAppliesPragmas(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var journal string
	if err := s.sqlDB.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journal); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if journal != "wal" {
		t.Errorf("expected wal journal, got %q", journal)
	}

	tests := []struct {
		pragma   string
		expected int
	}{
		{"foreign_keys", 1},
		{"busy_timeout", 5000},
	}
	for _, tt := range tests {
		var got int
		if err := s.sqlDB.QueryRowContext(ctx, "PRAGMA "+tt.pragma).Scan(&got); err != nil {
			t.Fatalf("%s: %v", tt.pragma, err)
		}
		if got != tt.expected {
			t.Errorf("%s = %d, expected %d", tt.pragma, got, tt.expected)
		}
	}
}
