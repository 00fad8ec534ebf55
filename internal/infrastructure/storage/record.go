package storage

import (
	"errors"
	"fmt"

	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/gridcodec"
)

// ErrNotFound reports an unknown puzzle ID.
var ErrNotFound = errors.New("storage: puzzle not found")

var errMissingID = errors.New("invalid puzzle: missing ID")

// record is the persisted form of a puzzle. Grids are kept in their
// encoded text form so stored files stay readable.
type record struct {
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Seed      int64            `json:"seed,omitempty"`
	Kind      string           `json:"kind"`
	Elements  []domain.Element `json:"elements"`
	CreatedAt int64            `json:"createdAt"`
	Solution  string           `json:"solution"`
	Attack    string           `json:"attack"`
	Defense   string           `json:"defense"`
}

// checkSavable rejects puzzles whose ID or element set could not be
// read back unchanged.
func checkSavable(p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errMissingID
	}
	if err := domain.ValidateElements(p.Elements()); err != nil {
		return fmt.Errorf("puzzle %s: %w", p.ID, err)
	}
	return nil
}

func toRecord(p *domain.Puzzle) record {
	return record{
		ID:        p.ID,
		Name:      p.Name,
		Notes:     p.Notes,
		Seed:      p.Seed,
		Kind:      p.Kind.String(),
		Elements:  p.Elements(),
		CreatedAt: p.CreatedAt,
		Solution:  gridcodec.EncodeSymbols(p.Solution()),
		Attack:    gridcodec.EncodeInts(p.Attack()),
		Defense:   gridcodec.EncodeInts(p.Defense()),
	}
}

// puzzle decodes the stored grids. Any inconsistency rejects the load
// rather than handing out a partial puzzle.
func (r record) puzzle() (*domain.Puzzle, error) {
	if err := domain.ValidateElements(r.Elements); err != nil {
		return nil, fmt.Errorf("puzzle %s: %w", r.ID, err)
	}
	sol, err := gridcodec.DecodeSymbols(r.Solution)
	if err != nil {
		return nil, fmt.Errorf("puzzle %s solution: %w", r.ID, err)
	}
	att, err := gridcodec.DecodeInts(r.Attack)
	if err != nil {
		return nil, fmt.Errorf("puzzle %s attack: %w", r.ID, err)
	}
	def, err := gridcodec.DecodeInts(r.Defense)
	if err != nil {
		return nil, fmt.Errorf("puzzle %s defense: %w", r.ID, err)
	}
	n := len(r.Elements)
	if len(sol) != n || len(att) != n || len(def) != n || len(sol[0]) != n || len(att[0]) != n || len(def[0]) != n {
		return nil, &domain.MalformedGridError{Line: 1, Err: fmt.Errorf("puzzle %s: grids do not match %d elements", r.ID, n)}
	}
	p := domain.NewPuzzle(r.Elements, sol, att, def)
	p.ID = r.ID
	p.Name = r.Name
	p.Notes = r.Notes
	p.Seed = r.Seed
	p.Kind = domain.ParseGeneratorKind(r.Kind)
	p.CreatedAt = r.CreatedAt
	return p, nil
}

func (r record) meta() domain.PuzzleMeta {
	return domain.PuzzleMeta{
		ID:        r.ID,
		Name:      r.Name,
		Size:      len(r.Elements),
		Kind:      domain.ParseGeneratorKind(r.Kind),
		CreatedAt: r.CreatedAt,
	}
}
