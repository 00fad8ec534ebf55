package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"svw.info/supoke/internal/compat"
	"svw.info/supoke/internal/config"
	"svw.info/supoke/internal/domain"
	"svw.info/supoke/internal/generator"
	"svw.info/supoke/internal/gridcodec"
	"svw.info/supoke/internal/ports"
)

// GenerateOptions selects the puzzle to build.
type GenerateOptions struct {
	Elements string
	Kind     string
	Seed     int64
	Strict   bool
	Save     bool
	Name     string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a puzzle's solution, attack and defense grids",
		Long: `Generate a puzzle and print its three grids as comma-separated text,
separated by blank lines: the solution, the attack overlay, then the
defense overlay.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, opts, cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Elements, "elements", "e", "", "comma-separated element list (default from config)")
	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", "", "deterministic|randomized (default from config)")
	cmd.Flags().Int64VarP(&opts.Seed, "seed", "s", 0, "seed for randomized puzzles")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on element pairs missing from every chart")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "store the puzzle in the configured storage")
	cmd.Flags().StringVar(&opts.Name, "name", "", "name stored with --save")
	return cmd
}

// request resolves the flags against the config defaults.
func (o *GenerateOptions) request(cfg config.Config) ports.GenerateRequest {
	req := ports.GenerateRequest{Elements: cfg.ElementSet(), Kind: cfg.Kind(), Seed: o.Seed}
	if o.Elements != "" {
		req.Elements = domain.ParseElements(o.Elements)
	}
	if o.Kind != "" {
		req.Kind = domain.ParseGeneratorKind(o.Kind)
	}
	return req
}

// table is the configured table, switched to strict mode by --strict.
func (o *GenerateOptions) table(cfg config.Config) (*compat.Table, error) {
	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}
	if o.Strict {
		table = table.WithMode(domain.Strict)
	}
	return table, nil
}

func runGenerate(rootOpts *RootOptions, opts *GenerateOptions, cmd *cobra.Command) error {
	cfg := rootOpts.cfg
	table, err := opts.table(cfg)
	if err != nil {
		return err
	}
	p, st, err := generator.NewAssembler(table).Generate(cmd.Context(), opts.request(cfg))
	if err != nil {
		return err
	}
	rootOpts.logger.Debug("generated",
		zap.String("id", p.ID),
		zap.Int("size", p.Size()),
		zap.Duration("dur", st.Duration),
	)
	if opts.Save {
		store, closeFn, err := openStorage(cfg)
		if err != nil {
			return err
		}
		defer closeFn()
		p.Name = opts.Name
		if err := store.Save(cmd.Context(), p); err != nil {
			return fmt.Errorf("save puzzle: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", p.ID)
	}
	return writePuzzle(cmd.OutOrStdout(), p)
}

// writePuzzle prints the three grids separated by blank lines.
func writePuzzle(w io.Writer, p *domain.Puzzle) error {
	_, err := fmt.Fprintf(w, "%s\n\n%s\n\n%s\n",
		gridcodec.EncodeSymbols(p.Solution()),
		gridcodec.EncodeInts(p.Attack()),
		gridcodec.EncodeInts(p.Defense()),
	)
	return err
}
