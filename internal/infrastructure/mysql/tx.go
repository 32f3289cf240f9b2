package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// UnitOfWork scopes one ledger workflow to a single repeatable-read
// transaction. The transaction is committed only when fn returns nil and is
// rolled back on every other exit path, including panics.
type UnitOfWork struct {
	db      TransactionManager
	timeout time.Duration
	logger  *zap.Logger
}

func NewUnitOfWork(db TransactionManager, timeout time.Duration, logger *zap.Logger) *UnitOfWork {
	return &UnitOfWork{
		db:      db,
		timeout: timeout,
		logger:  logger,
	}
}

func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	txCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	tx, err := u.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		u.logger.Error("failed to begin transaction", zap.Error(err))
		return fmt.Errorf("beginning transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op returning sql.ErrTxDone.
	defer tx.Rollback()

	if err := fn(txCtx, tx); err != nil {
		u.logger.Debug("transaction rolled back", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		u.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
