package main

import (
	"context"
	"fmt"

	"saathi/internal/config"
	"saathi/internal/database"
	"saathi/internal/logger"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

// env is what every subcommand needs once config is loaded.
type env struct {
	cfg *config.Config
	db  *sqlx.DB
}

// openEnv is replaced in tests.
var openEnv = func(ctx context.Context) (*env, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, nil, err
	}
	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		return nil, nil, err
	}
	return &env{cfg: cfg, db: db}, func() {
		db.Close()
		_ = logger.Sync()
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "saathictl",
		Short:         "Administer the Saathi databases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newAddUserCmd(), newPurgeSessionsCmd())
	return root
}
