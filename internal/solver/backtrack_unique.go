package solver

import (
	"context"
	"time"

	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/neighbor"
	"svw.info/supoke/internal/ports"
)

// Unique counts solutions up to 2 and reports whether exactly one exists.
func (s *BacktrackingSolver) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	start := time.Now()
	grid, table, err := s.prepare(b)
	if err == errUnsolvable {
		return false, ports.Stats{Duration: time.Since(start)}, nil
	}
	if err != nil {
		return false, ports.Stats{Duration: time.Since(start)}, err
	}
	nodes := 0
	count := 0
	var searchErr error

	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil || searchErr != nil || count >= 2 {
			return true // stop early
		}
		r, c, ok := findEmpty(grid)
		if !ok {
			count++
			return count >= 2
		}
		for _, e := range grid.Elements {
			nodes++
			if !isValid(grid, r, c, e) {
				continue
			}
			grid.Cells[r][c] = e
			fits, err := neighbor.Consistent(grid, table, r, c)
			if err != nil {
				searchErr = err
				return true
			}
			if fits && dfs() {
				return true
			}
			grid.Cells[r][c] = ""
		}
		return false
	}
	_ = dfs()
	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	if searchErr != nil {
		return false, st, searchErr
	}
	if err := ctx.Err(); err != nil {
		return false, st, err
	}
	return count == 1, st, nil
}
