package validator

import (
	"fmt"

	"svw.info/supoke/internal/domain"
)

// Mismatch is a cell where player input differs from the puzzle.
type Mismatch struct {
	domain.CellCoord
	Grid string `json:"grid"` // "solution", "attack" or "defense"
	Want string `json:"want"`
	Got  string `json:"got"`
}

// CheckMove reports whether m places the solution element at its cell.
// Moves outside the grid are an error.
func CheckMove(p *domain.Puzzle, m domain.Move) (bool, error) {
	want, ok := p.At(m.Row, m.Col)
	if !ok {
		return false, fmt.Errorf("validator: cell (%d,%d) outside %dx%d grid", m.Row, m.Col, p.Size(), p.Size())
	}
	return want == m.Element, nil
}

// CheckSolution compares a player grid with the solution. Empty cells
// count as mismatches.
func CheckSolution(p *domain.Puzzle, cells domain.SolutionGrid) ([]Mismatch, error) {
	want := p.Solution()
	if err := sameShape(len(want), len(cells), func(r int) int { return len(cells[r]) }); err != nil {
		return nil, err
	}
	var out []Mismatch
	for r := range want {
		for c := range want[r] {
			if want[r][c] != cells[r][c] {
				out = append(out, Mismatch{
					CellCoord: domain.CellCoord{Row: r, Col: c},
					Grid:      "solution",
					Want:      string(want[r][c]),
					Got:       string(cells[r][c]),
				})
			}
		}
	}
	return out, nil
}

// CheckOverlays compares player-entered overlays with the puzzle's.
// A nil overlay is skipped.
func CheckOverlays(p *domain.Puzzle, attack, defense domain.OverlayGrid) ([]Mismatch, error) {
	var out []Mismatch
	for _, o := range []struct {
		name      string
		want, got domain.OverlayGrid
	}{
		{"attack", p.Attack(), attack},
		{"defense", p.Defense(), defense},
	} {
		if o.got == nil {
			continue
		}
		if err := sameShape(len(o.want), len(o.got), func(r int) int { return len(o.got[r]) }); err != nil {
			return nil, fmt.Errorf("%s: %w", o.name, err)
		}
		for r := range o.want {
			for c := range o.want[r] {
				if o.want[r][c] != o.got[r][c] {
					out = append(out, Mismatch{
						CellCoord: domain.CellCoord{Row: r, Col: c},
						Grid:      o.name,
						Want:      fmt.Sprint(o.want[r][c]),
						Got:       fmt.Sprint(o.got[r][c]),
					})
				}
			}
		}
	}
	return out, nil
}

func sameShape(n, rows int, width func(r int) int) error {
	if rows != n {
		return fmt.Errorf("validator: got %d rows, want %d", rows, n)
	}
	for r := 0; r < rows; r++ {
		if width(r) != n {
			return fmt.Errorf("validator: row %d has %d cells, want %d", r, width(r), n)
		}
	}
	return nil
}
