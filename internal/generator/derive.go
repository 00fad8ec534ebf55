package generator

import (
	"context"
	"errors"
	"fmt"

	"svw.info/supoke/internal/domain"
)

// Fixed is a Strategy that always lays out a copy of solution.
func Fixed(solution domain.SolutionGrid) Strategy {
	return func([]domain.Element) (domain.SolutionGrid, error) {
		return solution.Clone(), nil
	}
}

// FromSolution rebuilds a puzzle around a supplied solution. The grid must
// be a Latin square over elements; both overlays are recomputed from it.
func (g *Assembler) FromSolution(ctx context.Context, elements []domain.Element, solution domain.SolutionGrid) (*domain.Puzzle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := domain.ValidateElements(elements); err != nil {
		return nil, err
	}
	if err := checkLatin(elements, solution); err != nil {
		return nil, err
	}
	return Assemble(elements, Fixed(solution), g.Table.Bind(elements))
}

// checkLatin reports the first cell that breaks the Latin property.
func checkLatin(elements []domain.Element, grid domain.SolutionGrid) error {
	n := len(elements)
	if len(grid) != n {
		return &domain.MalformedGridError{Err: fmt.Errorf("grid has %d rows, want %d", len(grid), n)}
	}
	known := make(map[domain.Element]bool, n)
	for _, e := range elements {
		known[e] = true
	}
	cols := make([]map[domain.Element]bool, n)
	for c := range cols {
		cols[c] = make(map[domain.Element]bool, n)
	}
	for r, row := range grid {
		if len(row) != n {
			return &domain.MalformedGridError{Line: r + 1, Err: fmt.Errorf("row has %d fields, want %d", len(row), n)}
		}
		seen := make(map[domain.Element]bool, n)
		for c, e := range row {
			bad := func(msg string) error {
				return &domain.MalformedGridError{Line: r + 1, Field: c + 1, Value: string(e), Err: errors.New(msg)}
			}
			switch {
			case !known[e]:
				return bad("not in the element set")
			case seen[e]:
				return bad("repeats in its row")
			case cols[c][e]:
				return bad("repeats in its column")
			}
			seen[e] = true
			cols[c][e] = true
		}
	}
	return nil
}
