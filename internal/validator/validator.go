package validator

import (
	"context"
	"errors"
	"fmt"

	"svw.info/supoke/internal/domain"
)

var errNotSquare = errors.New("validator: board is not square")

// maxSize is bounded by the width of the row/column bitmasks.
const maxSize = 64

type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

// Validate reports cells that repeat an element within their row or
// column, or hold a symbol outside the board's element set. Empty cells
// are ignored, so partial boards validate too.
func (v *FastValidator) Validate(ctx context.Context, b *domain.Board) (bool, []domain.CellCoord, error) {
	n := b.Size()
	for _, row := range b.Cells {
		if len(row) != n {
			return false, nil, errNotSquare
		}
	}
	if n > 0 && len(b.Elements) != n {
		return false, nil, fmt.Errorf("validator: %d elements for a %dx%d board", len(b.Elements), n, n)
	}
	if n > maxSize {
		return false, nil, fmt.Errorf("validator: board larger than %d", maxSize)
	}
	if n > 0 {
		if err := domain.ValidateElements(b.Elements); err != nil {
			return false, nil, err
		}
	}
	bit := make(map[domain.Element]uint64, n)
	for i, e := range b.Elements {
		bit[e] = 1 << uint(i)
	}
	conf := make([]domain.CellCoord, 0, 8)
	seen := make(map[domain.CellCoord]bool)
	flag := func(r, c int) {
		cc := domain.CellCoord{Row: r, Col: c}
		if !seen[cc] {
			seen[cc] = true
			conf = append(conf, cc)
		}
	}
	// symbols
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			val := b.Cells[r][c]
			if val == "" {
				continue
			}
			if _, ok := bit[val]; !ok {
				flag(r, c)
			}
		}
	}
	// rows
	for r := 0; r < n; r++ {
		var m uint64
		for c := 0; c < n; c++ {
			mask := bit[b.Cells[r][c]]
			if mask == 0 {
				continue
			}
			if m&mask != 0 {
				flag(r, c)
			}
			m |= mask
		}
	}
	// cols
	for c := 0; c < n; c++ {
		var m uint64
		for r := 0; r < n; r++ {
			mask := bit[b.Cells[r][c]]
			if mask == 0 {
				continue
			}
			if m&mask != 0 {
				flag(r, c)
			}
			m |= mask
		}
	}
	return len(conf) == 0, conf, nil
}
