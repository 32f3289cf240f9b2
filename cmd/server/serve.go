package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bizledger/internal/auth"
	"bizledger/internal/invoice"
	"bizledger/internal/order"
	"bizledger/internal/product"
	"bizledger/internal/reconcile"
	"bizledger/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().Bool("migrate", false, "apply schema migrations before serving")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	if rt.cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must be set to serve the API")
	}

	policies, err := rt.cfg.Policies()
	if err != nil {
		return err
	}

	db, err := rt.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if runMigrations, _ := cmd.Flags().GetBool("migrate"); runMigrations {
		if err := rt.migrate(db); err != nil {
			return err
		}
	}

	reconciler := reconcile.NewReconciler(reconcile.NewMySQLRepository(db), rt.logger)

	handlers := server.Handlers{
		Products:  product.NewModule(db, rt.logger),
		Orders:    order.NewModule(db, rt.cfg, policies, rt.logger),
		Invoices:  invoice.NewModule(db, rt.cfg, policies, rt.logger),
		Reconcile: reconcile.NewController(reconciler, rt.logger),
	}
	tokens := auth.NewTokenManager(rt.cfg.Auth.JWTSecret, rt.cfg.Auth.TokenTTL)
	router := server.NewRouter(handlers, tokens, rt.cfg.Server.RequestTimeout, rt.logger)
	srv := server.New(rt.cfg.Server.Port, rt.cfg.Server.RequestTimeout, router, rt.logger)

	if rt.cfg.Reconcile.Enabled {
		sched, err := reconcile.NewScheduler(reconciler, rt.cfg.Reconcile.Schedule, time.Minute, rt.logger)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() { <-sched.Stop().Done() }()
		rt.logger.Info("reconciliation scheduled", zap.String("schedule", rt.cfg.Reconcile.Schedule))
	}

	rt.logger.Info("ledger policies",
		zap.String("stock", string(policies.Stock)),
		zap.String("overpayment", string(policies.Overpayment)),
		zap.String("receiving", string(policies.Receiving)),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		rt.logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	rt.logger.Info("server stopped gracefully")
	return nil
}
