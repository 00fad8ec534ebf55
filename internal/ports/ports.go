package ports

import (
	"context"
	"time"

	"svw.info/supoke/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// GenerateRequest selects the element set and layout of a new puzzle.
type GenerateRequest struct {
	Elements []domain.Element
	Kind     domain.GeneratorKind
	Seed     int64
}

// Generator creates new puzzles.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*domain.Puzzle, Stats, error)
	// FromSolution wraps a supplied Latin square, deriving its overlays.
	FromSolution(ctx context.Context, elements []domain.Element, solution domain.SolutionGrid) (*domain.Puzzle, error)
}

// Solver completes a board under row/column uniqueness and its clues,
// and can test whether the completion is unique.
type Solver interface {
	Solve(ctx context.Context, b *domain.Board) (*domain.Board, Stats, error)
	Unique(ctx context.Context, b *domain.Board) (bool, Stats, error)
}

// Validator performs fast constraint checks (row/col).
type Validator interface {
	Validate(ctx context.Context, b *domain.Board) (ok bool, conflicts []domain.CellCoord, err error)
}

// Hinter returns the next logical step up to a max strategy tier.
type Hinter interface {
	Hint(ctx context.Context, b *domain.Board, max domain.StrategyTier) (domain.Hint, bool, error)
}

// Storage persists and retrieves puzzles.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
