package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"svw.info/supoke/internal/config"
	"svw.info/supoke/internal/infrastructure/storage"
	"svw.info/supoke/internal/logging"
	"svw.info/supoke/internal/ports"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath  string
	LogLevel    string
	PersistPath string
	Storage     string

	cfg    config.Config
	logger *zap.Logger
}

// NewRootCommand creates the root command for the supoke CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "supoke",
		Short:         "SuPoke - Latin square puzzles with type-matchup clues",
		Long:          "Generate, solve and serve SuPoke puzzles: Latin squares over elemental types whose cells carry attack and defense sums.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = opts.LogLevel
			}
			if flags.Changed("persist-path") {
				cfg.PersistPath = opts.PersistPath
			}
			if flags.Changed("storage") {
				cfg.Storage = opts.Storage
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "debug|info|warn|error")
	cmd.PersistentFlags().StringVar(&opts.PersistPath, "persist-path", "./data", "save directory or SQLite file")
	cmd.PersistentFlags().StringVar(&opts.Storage, "storage", "fs", "storage backend (fs|sqlite)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))

	return cmd
}

// openStorage builds the configured backend. The returned func releases it.
func openStorage(cfg config.Config) (ports.Storage, func() error, error) {
	if strings.EqualFold(cfg.Storage, "sqlite") {
		path := cfg.PersistPath
		if filepath.Ext(path) == "" {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return nil, nil, err
			}
			path = filepath.Join(path, "puzzles.db")
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	return storage.NewFS(cfg.PersistPath), func() error { return nil }, nil
}
