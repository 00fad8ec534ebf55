package neighbor

import (
	"svw.info/supoke/internal/domain"
)

// Consistent reports whether the filled cells around (r,c) still agree
// with the board's clues. For (r,c) and each of its neighbours that holds
// an element, the partial attack and defense sums over filled neighbours
// must not exceed the clue, and must equal it once every neighbour is
// filled. Damage values are non-negative, so an exceeded clue can never
// recover. Boards without clues are always consistent.
func Consistent(b *domain.Board, table Table, r, c int) (bool, error) {
	if b.Attack == nil && b.Defense == nil {
		return true, nil
	}
	n := b.Size()
	ok, err := cellConsistent(b, table, r, c)
	if err != nil || !ok {
		return ok, err
	}
	for _, d := range offsets {
		nr, nc := r+d[0], c+d[1]
		if !inBounds(n, n, nr, nc) {
			continue
		}
		ok, err := cellConsistent(b, table, nr, nc)
		if err != nil || !ok {
			return ok, err
		}
	}
	return true, nil
}

func cellConsistent(b *domain.Board, table Table, r, c int) (bool, error) {
	cell := b.Cells[r][c]
	if cell == "" {
		return true, nil
	}
	n := b.Size()
	att, def, complete := 0, 0, true
	for _, d := range offsets {
		nr, nc := r+d[0], c+d[1]
		if !inBounds(n, n, nr, nc) {
			continue
		}
		other := b.Cells[nr][nc]
		if other == "" {
			complete = false
			continue
		}
		out, err := table.Damage(cell, other)
		if err != nil {
			return false, err
		}
		in, err := table.Damage(other, cell)
		if err != nil {
			return false, err
		}
		att += out
		def += in
	}
	if b.Attack != nil && !within(att, b.Attack[r][c], complete) {
		return false, nil
	}
	if b.Defense != nil && !within(def, b.Defense[r][c], complete) {
		return false, nil
	}
	return true, nil
}

func within(sum, clue int, complete bool) bool {
	if complete {
		return sum == clue
	}
	return sum <= clue
}
