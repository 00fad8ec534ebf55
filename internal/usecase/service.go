package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/ports"
	"svw.info/supoke/internal/validator"
)

type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage
	Log       *zap.Logger
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Solver: s, Generator: g, Validator: v, Hinter: h, Storage: st, Log: log}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, b *domain.Board) (*domain.Board, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, b)
}

func (u *Service) Unique(ctx context.Context, b *domain.Board) (bool, ports.Stats, error) {
	if u.Solver == nil {
		return false, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Unique(ctx, b)
}

func (u *Service) Generate(ctx context.Context, req ports.GenerateRequest) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	p, st, err := u.Generator.Generate(ctx, req)
	if err != nil {
		u.Log.Warn("generate failed", zap.Int("elements", len(req.Elements)), zap.Error(err))
		return nil, st, err
	}
	u.Log.Debug("generated puzzle",
		zap.String("id", p.ID),
		zap.Int("size", p.Size()),
		zap.Stringer("kind", p.Kind),
		zap.Int64("seed", p.Seed),
		zap.Duration("dur", st.Duration),
	)
	return p, st, nil
}

// Derive builds a puzzle around a supplied solution. Overlays are never
// taken from the caller.
func (u *Service) Derive(ctx context.Context, elements []domain.Element, solution domain.SolutionGrid) (*domain.Puzzle, error) {
	if u.Generator == nil {
		return nil, errNotConfigured
	}
	return u.Generator.FromSolution(ctx, elements, solution)
}

func (u *Service) Validate(ctx context.Context, b *domain.Board) (bool, []domain.CellCoord, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, b)
}

func (u *Service) Hint(ctx context.Context, b *domain.Board, max domain.StrategyTier) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, b, max)
}

// CheckMove loads a stored puzzle and compares a placement with its solution.
func (u *Service) CheckMove(ctx context.Context, id string, m domain.Move) (bool, error) {
	p, err := u.Load(ctx, id)
	if err != nil {
		return false, err
	}
	return validator.CheckMove(p, m)
}

// CheckGrids loads a stored puzzle and compares player-entered grids with it.
// Nil grids are skipped.
func (u *Service) CheckGrids(ctx context.Context, id string, cells domain.SolutionGrid, attack, defense domain.OverlayGrid) ([]validator.Mismatch, error) {
	p, err := u.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	var out []validator.Mismatch
	if cells != nil {
		mm, err := validator.CheckSolution(p, cells)
		if err != nil {
			return nil, err
		}
		out = append(out, mm...)
	}
	mm, err := validator.CheckOverlays(p, attack, defense)
	if err != nil {
		return nil, err
	}
	return append(out, mm...), nil
}

// Persistence
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, p)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
