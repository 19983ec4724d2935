// Package store persists extraction runs and their documents in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ukaji3/xparse-go/pkg/xparse/dictionary"
	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
	"github.com/ukaji3/xparse-go/pkg/xparse/models"
	"github.com/ukaji3/xparse-go/pkg/xparse/store/migrations"
)

// Run describes one extraction run.
type Run struct {
	ID          string
	Source      string
	Sheet       string
	ColumnRange string
	Checksum    string
	Blocks      int
	Persons     int
	CreatedAt   time.Time
}

// Store persists runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveRun stores run and its documents in one transaction. Blocks and
// Persons are computed from blocks; CreatedAt defaults to now.
func (s *Store) SaveRun(ctx context.Context, run Run, blocks [][]models.Person) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("run id is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.Blocks = len(blocks)
	run.Persons = 0
	for _, block := range blocks {
		run.Persons += len(block)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, sheet, column_range, checksum, blocks, persons, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Sheet, run.ColumnRange, run.Checksum,
		run.Blocks, run.Persons, run.CreatedAt.UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, block := range blocks {
		for _, p := range block {
			if err := insertPerson(ctx, tx, run.ID, i+1, p); err != nil {
				return fmt.Errorf("insert person %d: %w", p.ID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

func insertPerson(ctx context.Context, tx *sql.Tx, runID string, block int, p models.Person) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO persons (run_id, id, block, name, relative_of, relation_type, position, income)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, p.ID, block, strArg(p.Name), intArg(p.RelativeOf), dictArg(p.RelationType), strArg(p.Position), strArg(p.Income),
	); err != nil {
		return err
	}
	for seq, r := range p.Realties {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO realties (run_id, person_id, seq, realty_type, object_type, ownership_type, ownership_part, square, country)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, p.ID, seq, int(r.RealtyType), dictArg(r.ObjectType), dictArg(r.OwnershipType),
			strArg(r.OwnershipPart), cellArg(r.Square), dictArg(r.Country),
		); err != nil {
			return err
		}
	}
	for seq, t := range p.Transports {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transports (run_id, person_id, seq, name) VALUES (?, ?, ?, ?)`,
			runID, p.ID, seq, t.TransportName,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetRun returns the run with id.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, source, sheet, column_range, checksum, blocks, persons, created_at FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// RunsByChecksum returns earlier runs over the same input, newest first.
func (s *Store) RunsByChecksum(ctx context.Context, checksum string) ([]Run, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, source, sheet, column_range, checksum, blocks, persons, created_at
		 FROM runs WHERE checksum = ? ORDER BY created_at DESC, id`, checksum)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var createdAt int64
	if err := row.Scan(&run.ID, &run.Source, &run.Sheet, &run.ColumnRange, &run.Checksum,
		&run.Blocks, &run.Persons, &createdAt); err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.UnixMilli(createdAt).UTC()
	return run, nil
}

// Persons loads the documents of a run grouped into blocks.
func (s *Store) Persons(ctx context.Context, runID string) ([][]models.Person, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, block, name, relative_of, relation_type, position, income
		 FROM persons WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query persons: %w", err)
	}

	var blocks [][]models.Person
	index := make(map[int][2]int)
	lastSeen := 0
	for rows.Next() {
		var (
			p            models.Person
			block        int
			name         sql.NullString
			relativeOf   sql.NullInt64
			relationType any
			position     sql.NullString
			income       sql.NullString
		)
		if err := rows.Scan(&p.ID, &block, &name, &relativeOf, &relationType, &position, &income); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan person: %w", err)
		}
		p.Name = nullString(name)
		p.Position = nullString(position)
		p.Income = nullString(income)
		p.RelationType = dictValue(relationType)
		if relativeOf.Valid {
			v := int(relativeOf.Int64)
			p.RelativeOf = &v
		}
		if block != lastSeen {
			blocks = append(blocks, nil)
			lastSeen = block
		}
		last := len(blocks) - 1
		index[p.ID] = [2]int{last, len(blocks[last])}
		blocks[last] = append(blocks[last], p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := s.loadRealties(ctx, runID, blocks, index); err != nil {
		return nil, err
	}
	if err := s.loadTransports(ctx, runID, blocks, index); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (s *Store) loadRealties(ctx context.Context, runID string, blocks [][]models.Person, index map[int][2]int) error {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT person_id, realty_type, object_type, ownership_type, ownership_part, square, country
		 FROM realties WHERE run_id = ? ORDER BY person_id, seq`, runID)
	if err != nil {
		return fmt.Errorf("query realties: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			personID, realtyType          int
			objectType, ownership, square any
			country                       any
			part                          sql.NullString
		)
		if err := rows.Scan(&personID, &realtyType, &objectType, &ownership, &part, &square, &country); err != nil {
			return fmt.Errorf("scan realty: %w", err)
		}
		pos, ok := index[personID]
		if !ok {
			continue
		}
		p := &blocks[pos[0]][pos[1]]
		p.Realties = append(p.Realties, models.Realty{
			RealtyType:    models.RealtyType(realtyType),
			ObjectType:    dictValue(objectType),
			OwnershipType: dictValue(ownership),
			OwnershipPart: nullString(part),
			Square:        grid.FromAny(square),
			Country:       dictValue(country),
		})
	}
	return rows.Err()
}

func (s *Store) loadTransports(ctx context.Context, runID string, blocks [][]models.Person, index map[int][2]int) error {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT person_id, name FROM transports WHERE run_id = ? ORDER BY person_id, seq`, runID)
	if err != nil {
		return fmt.Errorf("query transports: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var personID int
		var name string
		if err := rows.Scan(&personID, &name); err != nil {
			return fmt.Errorf("scan transport: %w", err)
		}
		if pos, ok := index[personID]; ok {
			p := &blocks[pos[0]][pos[1]]
			p.Transports = append(p.Transports, models.Transport{TransportName: name})
		}
	}
	return rows.Err()
}

// dictArg keeps codes as integers and pass-through labels as text.
func dictArg(v dictionary.Value) any {
	if v.IsNull() {
		return nil
	}
	if n, ok := v.Int(); ok {
		return n
	}
	return v.String()
}

func dictValue(raw any) dictionary.Value {
	switch v := raw.(type) {
	case nil:
		return dictionary.Null()
	case int64:
		return dictionary.Code(int(v))
	case string:
		return dictionary.Text(v)
	case []byte:
		return dictionary.Text(string(v))
	default:
		return dictionary.Text(fmt.Sprint(v))
	}
}

func cellArg(v grid.Value) any {
	switch v.Kind() {
	case grid.KindNumber:
		f, _ := v.Float()
		return f
	case grid.KindText:
		return v.String()
	default:
		return nil
	}
}

func strArg(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func intArg(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
