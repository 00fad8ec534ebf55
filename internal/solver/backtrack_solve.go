package solver

import (
	"context"
	"time"

	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/neighbor"
	"svw.info/supoke/internal/ports"
)

func (s *BacktrackingSolver) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	start := time.Now()
	grid, table, err := s.prepare(b)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	nodes := 0
	var searchErr error
	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil {
			return false
		}
		r, c, ok := findEmpty(grid)
		if !ok {
			return true
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
				return false
			}
			if fits && dfs() {
				return true
			}
			grid.Cells[r][c] = ""
		}
		return false
	}
	if !dfs() {
		if searchErr != nil {
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, searchErr
		}
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, errUnsolvable
	}
	return grid, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
