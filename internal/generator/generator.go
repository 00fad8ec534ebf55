package generator

import (
	"svw.info/supoke/internal/compat"
	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/neighbor"
)

// Assemble lays out a solution with strategy and derives both overlays
// from table. Element set errors from the strategy are returned as is.
func Assemble(elements []domain.Element, strategy Strategy, table neighbor.Table) (*domain.Puzzle, error) {
	solution, err := strategy(elements)
	if err != nil {
		return nil, err
	}
	attack, defense, err := neighbor.Aggregate(solution, table)
	if err != nil {
		return nil, err
	}
	return domain.NewPuzzle(elements, solution, attack, defense), nil
}

// Assembler creates puzzles for a configured compatibility table.
type Assembler struct {
	Table *compat.Table
}

// NewAssembler wires an assembler that binds table to each puzzle's element set.
func NewAssembler(t *compat.Table) *Assembler {
	return &Assembler{Table: t}
}
