package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/gridcodec"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema
// 1 - Added index on puzzles.created_at for List
const currentSchemaVersion = 1

// SQLite stores puzzles in a single table, grids in their encoded text form.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates or opens a database at path and applies migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < 1 {
		if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_puzzles_created ON puzzles(created_at)`); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) Save(ctx context.Context, p *domain.Puzzle) error {
	if err := checkSavable(p); err != nil {
		return err
	}
	rec := toRecord(p)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO puzzles (id, name, notes, seed, kind, elements, size, created_at, solution, attack, defense)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, notes = excluded.notes, seed = excluded.seed,
			kind = excluded.kind, elements = excluded.elements, size = excluded.size,
			created_at = excluded.created_at, solution = excluded.solution,
			attack = excluded.attack, defense = excluded.defense`,
		rec.ID, rec.Name, rec.Notes, rec.Seed, rec.Kind, joinElements(rec.Elements), len(rec.Elements),
		rec.CreatedAt, rec.Solution, rec.Attack, rec.Defense,
	)
	if err != nil {
		return fmt.Errorf("save puzzle %s: %w", p.ID, err)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	var rec record
	var elems string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, notes, seed, kind, elements, created_at, solution, attack, defense
		FROM puzzles WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Notes, &rec.Seed, &rec.Kind, &elems, &rec.CreatedAt, &rec.Solution, &rec.Attack, &rec.Defense)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load puzzle %s: %w", id, err)
	}
	rec.Elements = splitElements(elems)
	return rec.puzzle()
}

func (s *SQLite) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, kind, size, created_at FROM puzzles ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list puzzles: %w", err)
	}
	defer rows.Close()

	var out []domain.PuzzleMeta
	for rows.Next() {
		var m domain.PuzzleMeta
		var kind string
		if err := rows.Scan(&m.ID, &m.Name, &kind, &m.Size, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan puzzle: %w", err)
		}
		m.Kind = domain.ParseGeneratorKind(kind)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Element lists are stored as one encoded grid row.
func joinElements(elems []domain.Element) string {
	return gridcodec.EncodeSymbols(domain.SolutionGrid{elems})
}

func splitElements(s string) []domain.Element {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	g, err := gridcodec.DecodeSymbols(s)
	if err != nil || len(g) != 1 {
		return nil
	}
	return g[0]
}
