package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/ports"
)

// Generate creates a puzzle over req.Elements. Randomized puzzles are
// reproducible for a given seed; deterministic ones ignore it.
func (g *Assembler) Generate(ctx context.Context, req ports.GenerateRequest) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, ports.Stats{}, err
	}
	var strategy Strategy = Deterministic
	if req.Kind == domain.Randomized {
		strategy = RandomizedWith(rand.New(rand.NewSource(req.Seed)))
	}
	table := g.Table.Bind(req.Elements)
	p, err := Assemble(req.Elements, strategy, table)
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, ports.Stats{Duration: time.Since(start)}, err
	}
	p.ID = id.String()
	p.Seed = req.Seed
	p.Kind = req.Kind
	p.CreatedAt = time.Now().UnixNano()

	n := p.Size()
	return p, ports.Stats{Nodes: n * n, Duration: time.Since(start)}, nil
}
