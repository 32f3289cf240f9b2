package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bizledger/internal/commons"
	"bizledger/internal/config"
	"bizledger/internal/infrastructure/logger"
	"bizledger/internal/infrastructure/mysql"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bizledger",
		Short:         "Order, stock and invoice ledger service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "config.yaml", "YAML file overlaid on the environment configuration")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newReconcileCmd(),
		newTokenCmd(),
	)

	return root
}

type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func bootstrap(cmd *cobra.Command) (*runtime, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := commons.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return &runtime{cfg: cfg, logger: zapLogger}, nil
}

func (rt *runtime) openDB() (*sql.DB, error) {
	db, err := mysql.NewConnection(rt.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	rt.logger.Info("database connected",
		zap.String("host", rt.cfg.Database.Host),
		zap.String("database", rt.cfg.Database.Name),
	)
	return db, nil
}

func (rt *runtime) migrate(db *sql.DB) error {
	version, err := mysql.Migrate(db)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	rt.logger.Info("schema migrated", zap.Uint("version", version))
	return nil
}
