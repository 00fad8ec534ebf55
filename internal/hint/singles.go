package hint

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"svw.info/supoke/internal/compat"
	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/neighbor"
)

// Singles suggests cells with a single candidate. At StrategySingles only
// row and column rules are used; StrategyClues also lets the attack and
// defense clues rule candidates out.
type Singles struct {
	Table *compat.Table
}

func NewSingles(t *compat.Table) *Singles { return &Singles{Table: t} }

// display title-cases an element for messages. Casers are stateful, so
// each call gets its own.
func display(e domain.Element) string {
	return cases.Title(language.English).String(string(e))
}

// Hint returns the first cell, in row-major order, that the allowed
// strategies resolve to one element. Misshapen boards are an error.
func (h *Singles) Hint(ctx context.Context, b *domain.Board, max domain.StrategyTier) (domain.Hint, bool, error) {
	if err := b.CheckShape(); err != nil {
		return domain.Hint{}, false, err
	}
	n := b.Size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.Cells[r][c] != "" {
				continue
			}
			cands := candidates(b, r, c)
			if len(cands) == 1 {
				return domain.Hint{
					Message:  fmt.Sprintf("Single: only %s fits this row and column", display(cands[0])),
					Cells:    []domain.CellCoord{{Row: r, Col: c}},
					Element:  cands[0],
					Strategy: domain.StrategySingles,
				}, true, nil
			}
		}
	}
	if max < domain.StrategyClues || (b.Attack == nil && b.Defense == nil) {
		return domain.Hint{}, false, nil
	}

	table := h.Table.Bind(b.Elements)
	work := b.Clone()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if err := ctx.Err(); err != nil {
				return domain.Hint{}, false, err
			}
			if work.Cells[r][c] != "" {
				continue
			}
			var fits []domain.Element
			for _, e := range candidates(work, r, c) {
				work.Cells[r][c] = e
				ok, err := neighbor.Consistent(work, table, r, c)
				work.Cells[r][c] = ""
				if err != nil {
					return domain.Hint{}, false, err
				}
				if ok {
					fits = append(fits, e)
				}
			}
			if len(fits) == 1 {
				return domain.Hint{
					Message:  fmt.Sprintf("Clue: only %s matches the attack and defense values around this cell", display(fits[0])),
					Cells:    clueCells(n, r, c),
					Element:  fits[0],
					Strategy: domain.StrategyClues,
				}, true, nil
			}
		}
	}
	return domain.Hint{}, false, nil
}

// clueCells is the target cell followed by its neighbours.
func clueCells(n, r, c int) []domain.CellCoord {
	out := []domain.CellCoord{{Row: r, Col: c}}
	neighbor.Each(n, n, r, c, func(nr, nc int) {
		out = append(out, domain.CellCoord{Row: nr, Col: nc})
	})
	return out
}

// candidates lists the elements not yet used in the row or column of (r,c).
func candidates(b *domain.Board, r, c int) []domain.Element {
	var out []domain.Element
	for _, e := range b.Elements {
		if allowed(b, r, c, e) {
			out = append(out, e)
		}
	}
	return out
}

func allowed(b *domain.Board, r, c int, e domain.Element) bool {
	for i := 0; i < b.Size(); i++ {
		if b.Cells[r][i] == e || b.Cells[i][c] == e {
			return false
		}
	}
	return true
}
