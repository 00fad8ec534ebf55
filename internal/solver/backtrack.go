package solver

import (
	"errors"

	"svw.info/supoke/internal/compat"
	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/neighbor"
)

var errUnsolvable = errors.New("unsolvable or canceled")

// BacktrackingSolver is a straightforward recursive solver over row and
// column uniqueness, pruned by the board's attack and defense clues.
type BacktrackingSolver struct {
	Table *compat.Table
}

func NewBacktrackingSolver(t *compat.Table) *BacktrackingSolver {
	return &BacktrackingSolver{Table: t}
}

// --- helpers used by Solve/Unique (in other files) ---
func isValid(b *domain.Board, r, c int, e domain.Element) bool {
	for i := 0; i < b.Size(); i++ {
		if (i != c && b.Cells[r][i] == e) || (i != r && b.Cells[i][c] == e) {
			return false
		}
	}
	return true
}

func findEmpty(b *domain.Board) (int, int, bool) {
	for r := 0; r < b.Size(); r++ {
		for c := 0; c < b.Size(); c++ {
			if b.Cells[r][c] == "" {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// prepare copies b and checks that its givens agree with each other and
// with the clues, so the search only has to check new placements.
func (s *BacktrackingSolver) prepare(b *domain.Board) (*domain.Board, neighbor.Table, error) {
	if err := b.CheckShape(); err != nil {
		return nil, nil, err
	}
	n := len(b.Elements)

	work := b.Clone()
	table := s.Table.Bind(b.Elements)
	known := make(map[domain.Element]bool, n)
	for _, e := range b.Elements {
		known[e] = true
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			e := work.Cells[r][c]
			if e == "" {
				continue
			}
			if !known[e] || !isValid(work, r, c, e) {
				return nil, nil, errUnsolvable
			}
			ok, err := neighbor.Consistent(work, table, r, c)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				return nil, nil, errUnsolvable
			}
		}
	}
	return work, table, nil
}

// The implementations for Solve and Unique are in backtrack_solve.go and backtrack_unique.go,
// and use the helpers above.
