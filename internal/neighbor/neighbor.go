// Package neighbor derives the attack and defense overlays of a solved grid
// from its Moore neighbourhoods, and checks partially filled boards
// against those overlays.
//
// A neighbour of (r,c) is any in-bounds cell (r+dr, c+dc) with
// dr, dc in {-1,0,1} and (dr,dc) != (0,0). There is no wraparound, so for
// N >= 3 corner cells have 3 neighbours, other edge cells 5, interior 8.
package neighbor

import (
	"svw.info/supoke/internal/domain"
)

// Table is the compatibility lookup the overlays are built from.
type Table interface {
	Damage(attacker, defender domain.Element) (int, error)
}

// offsets lists the Moore neighbourhood clockwise from north.
var offsets = [8][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}

// inBounds reports whether (r,c) lies inside a rows×cols grid.
func inBounds(rows, cols, r, c int) bool {
	return r >= 0 && r < rows && c >= 0 && c < cols
}

// Each calls fn for every in-bounds neighbour of (r,c) in a rows×cols grid.
func Each(rows, cols, r, c int, fn func(nr, nc int)) {
	for _, d := range offsets {
		nr, nc := r+d[0], c+d[1]
		if inBounds(rows, cols, nr, nc) {
			fn(nr, nc)
		}
	}
}

// Count is the number of in-bounds neighbours of (r,c).
func Count(rows, cols, r, c int) int {
	n := 0
	Each(rows, cols, r, c, func(int, int) { n++ })
	return n
}

// Aggregate computes both overlays of grid. Attack[r][c] sums what the
// cell deals to each neighbour; Defense[r][c] sums what it receives.
// The only error is a lookup failure from a strict table.
func Aggregate(grid domain.SolutionGrid, table Table) (attack, defense domain.OverlayGrid, err error) {
	rows := len(grid)
	attack = make(domain.OverlayGrid, rows)
	defense = make(domain.OverlayGrid, rows)
	for r := 0; r < rows; r++ {
		cols := len(grid[r])
		attack[r] = make([]int, cols)
		defense[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			cell := grid[r][c]
			for _, d := range offsets {
				nr, nc := r+d[0], c+d[1]
				if !inBounds(rows, cols, nr, nc) || nc >= len(grid[nr]) {
					continue
				}
				other := grid[nr][nc]
				out, err := table.Damage(cell, other)
				if err != nil {
					return nil, nil, err
				}
				in, err := table.Damage(other, cell)
				if err != nil {
					return nil, nil, err
				}
				attack[r][c] += out
				defense[r][c] += in
			}
		}
	}
	return attack, defense, nil
}
