package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Element is an opaque symbol placed in a grid cell, e.g. "grass".
type Element string

// ParseElement normalises user input into an Element symbol.
func ParseElement(s string) Element {
	return Element(norm.NFC.String(strings.ToLower(strings.TrimSpace(s))))
}

// ParseElements splits a comma separated list into elements.
func ParseElements(s string) []Element {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]Element, 0, len(parts))
	for _, p := range parts {
		out = append(out, ParseElement(p))
	}
	return out
}

// SolutionGrid is an N×N matrix of elements. Empty cells hold "".
type SolutionGrid [][]Element

// OverlayGrid is an N×N matrix of non-negative clue values.
type OverlayGrid [][]int

// Clone returns a deep copy of g.
func (g SolutionGrid) Clone() SolutionGrid {
	if g == nil {
		return nil
	}
	out := make(SolutionGrid, len(g))
	for i, row := range g {
		out[i] = append([]Element(nil), row...)
	}
	return out
}

// Clone returns a deep copy of g.
func (g OverlayGrid) Clone() OverlayGrid {
	if g == nil {
		return nil
	}
	out := make(OverlayGrid, len(g))
	for i, row := range g {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// NewOverlayGrid allocates a zeroed n×n overlay.
func NewOverlayGrid(n int) OverlayGrid {
	out := make(OverlayGrid, n)
	for i := range out {
		out[i] = make([]int, n)
	}
	return out
}

// NewSolutionGrid allocates an empty n×n grid.
func NewSolutionGrid(n int) SolutionGrid {
	out := make(SolutionGrid, n)
	for i := range out {
		out[i] = make([]Element, n)
	}
	return out
}

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a partially filled grid the player is working on, plus the
// clues shown to them. Attack and Defense may be nil when no clues apply.
type Board struct {
	Elements []Element    `json:"elements"`
	Cells    SolutionGrid `json:"cells"`
	Attack   OverlayGrid  `json:"attack,omitempty"`
	Defense  OverlayGrid  `json:"defense,omitempty"`
}

// Size is the board dimension.
func (b *Board) Size() int { return len(b.Cells) }

// CheckShape verifies the element set and that Cells and any clue grids
// are N×N for N elements. Failures are *MalformedGridError values naming
// the offending grid.
func (b *Board) CheckShape() error {
	if err := ValidateElements(b.Elements); err != nil {
		return err
	}
	n := len(b.Elements)
	check := func(name string, rows int, width func(int) int) error {
		if rows != n {
			return &MalformedGridError{Err: fmt.Errorf("%s has %d rows, want %d", name, rows, n)}
		}
		for r := 0; r < rows; r++ {
			if width(r) != n {
				return &MalformedGridError{Line: r + 1, Err: fmt.Errorf("%s row has %d cells, want %d", name, width(r), n)}
			}
		}
		return nil
	}
	if err := check("cells", len(b.Cells), func(r int) int { return len(b.Cells[r]) }); err != nil {
		return err
	}
	if b.Attack != nil {
		if err := check("attack", len(b.Attack), func(r int) int { return len(b.Attack[r]) }); err != nil {
			return err
		}
	}
	if b.Defense != nil {
		if err := check("defense", len(b.Defense), func(r int) int { return len(b.Defense[r]) }); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of b.
func (b *Board) Clone() *Board {
	return &Board{
		Elements: append([]Element(nil), b.Elements...),
		Cells:    b.Cells.Clone(),
		Attack:   b.Attack.Clone(),
		Defense:  b.Defense.Clone(),
	}
}

// Move is a single placement entered by the player.
type Move struct {
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	Element Element `json:"element"`
}

// Hint describes a deduction suggestion for the UI.
type Hint struct {
	Message  string       `json:"message,omitempty"`
	Cells    []CellCoord  `json:"cells,omitempty"`
	Element  Element      `json:"element,omitempty"`
	Strategy StrategyTier `json:"strategy"`
}

// Puzzle is the immutable bundle of a solution and its two overlays.
// Grids can only be read through copying accessors.
type Puzzle struct {
	ID        string
	Seed      int64
	Kind      GeneratorKind
	CreatedAt int64
	// Optional user metadata
	Name  string
	Notes string

	elements []Element
	solution SolutionGrid
	attack   OverlayGrid
	defense  OverlayGrid
}

// NewPuzzle bundles deep copies of the given grids.
func NewPuzzle(elements []Element, solution SolutionGrid, attack, defense OverlayGrid) *Puzzle {
	return &Puzzle{
		elements: append([]Element(nil), elements...),
		solution: solution.Clone(),
		attack:   attack.Clone(),
		defense:  defense.Clone(),
	}
}

// Size is the grid dimension N.
func (p *Puzzle) Size() int { return len(p.solution) }

// Elements returns a copy of the active element set.
func (p *Puzzle) Elements() []Element { return append([]Element(nil), p.elements...) }

// Solution returns a copy of the solved grid.
func (p *Puzzle) Solution() SolutionGrid { return p.solution.Clone() }

// Attack returns a copy of the attack overlay.
func (p *Puzzle) Attack() OverlayGrid { return p.attack.Clone() }

// Defense returns a copy of the defense overlay.
func (p *Puzzle) Defense() OverlayGrid { return p.defense.Clone() }

// At returns the solution element at (r,c) and whether the cell exists.
func (p *Puzzle) At(r, c int) (Element, bool) {
	if r < 0 || r >= len(p.solution) || c < 0 || c >= len(p.solution[r]) {
		return "", false
	}
	return p.solution[r][c], true
}

// Board returns an empty board carrying this puzzle's clues.
func (p *Puzzle) Board() *Board {
	return &Board{
		Elements: p.Elements(),
		Cells:    NewSolutionGrid(p.Size()),
		Attack:   p.attack.Clone(),
		Defense:  p.defense.Clone(),
	}
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID        string        `json:"id"`
	Name      string        `json:"name,omitempty"`
	Size      int           `json:"size"`
	Kind      GeneratorKind `json:"kind"`
	CreatedAt int64         `json:"createdAt"`
}
