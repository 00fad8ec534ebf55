package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/generator"
	"svw.info/supoke/internal/gridcodec"
	"svw.info/supoke/internal/validator"
)

// VerifyOptions names the grids to check and the puzzle to check them against.
type VerifyOptions struct {
	GenerateOptions
	ID       string
	Solution string
	Attack   string
	Defense  string
}

var errMismatch = errors.New("grids do not match the puzzle")

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check grid files against a puzzle",
		Long: `Decode comma-separated grid files and compare them cell by cell with a
puzzle. The puzzle is loaded by --id, or regenerated from --elements,
--kind and --seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, opts, cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Elements, "elements", "e", "", "comma-separated element list (default from config)")
	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", "", "deterministic|randomized (default from config)")
	cmd.Flags().Int64VarP(&opts.Seed, "seed", "s", 0, "seed for randomized puzzles")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on element pairs missing from every chart")
	cmd.Flags().StringVar(&opts.ID, "id", "", "stored puzzle to check against")
	cmd.Flags().StringVar(&opts.Solution, "solution", "", "solution grid file")
	cmd.Flags().StringVar(&opts.Attack, "attack", "", "attack grid file")
	cmd.Flags().StringVar(&opts.Defense, "defense", "", "defense grid file")
	return cmd
}

func (o *VerifyOptions) puzzle(rootOpts *RootOptions, cmd *cobra.Command) (*domain.Puzzle, error) {
	cfg := rootOpts.cfg
	if o.ID != "" {
		store, closeFn, err := openStorage(cfg)
		if err != nil {
			return nil, err
		}
		defer closeFn()
		return store.Load(cmd.Context(), o.ID)
	}
	table, err := o.table(cfg)
	if err != nil {
		return nil, err
	}
	p, _, err := generator.NewAssembler(table).Generate(cmd.Context(), o.request(cfg))
	return p, err
}

func readGrid[T any](path string, decode func(string) ([][]T, error)) ([][]T, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func runVerify(rootOpts *RootOptions, opts *VerifyOptions, cmd *cobra.Command) error {
	if opts.Solution == "" && opts.Attack == "" && opts.Defense == "" {
		return errors.New("nothing to verify: pass --solution, --attack or --defense")
	}
	p, err := opts.puzzle(rootOpts, cmd)
	if err != nil {
		return err
	}

	sol, err := readGrid(opts.Solution, func(s string) ([][]domain.Element, error) { return gridcodec.DecodeSymbols(s) })
	if err != nil {
		return err
	}
	att, err := readGrid(opts.Attack, func(s string) ([][]int, error) { return gridcodec.DecodeInts(s) })
	if err != nil {
		return err
	}
	def, err := readGrid(opts.Defense, func(s string) ([][]int, error) { return gridcodec.DecodeInts(s) })
	if err != nil {
		return err
	}

	var mismatches []validator.Mismatch
	if sol != nil {
		mm, err := validator.CheckSolution(p, sol)
		if err != nil {
			return err
		}
		mismatches = append(mismatches, mm...)
	}
	mm, err := validator.CheckOverlays(p, att, def)
	if err != nil {
		return err
	}
	mismatches = append(mismatches, mm...)

	out := cmd.OutOrStdout()
	for _, m := range mismatches {
		fmt.Fprintf(out, "%s (%d,%d): want %s, got %s\n", m.Grid, m.Row, m.Col, m.Want, m.Got)
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %d cell(s)", errMismatch, len(mismatches))
	}
	fmt.Fprintln(out, "ok")
	return nil
}
