package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bizledger/internal/domain"
)

type Repository interface {
	OrderTotalDrift(ctx context.Context, kind domain.OrderKind) ([]Discrepancy, error)
	LineTotalDrift(ctx context.Context, kind domain.OrderKind) ([]Discrepancy, error)
	InvoicePaidDrift(ctx context.Context) ([]Discrepancy, error)
	StockDrift(ctx context.Context) ([]Discrepancy, error)
}

// Reconciler recomputes the stored aggregates of the ledger from their
// source rows and reports every mismatch. It never writes.
type Reconciler struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewReconciler(repo Repository, logger *zap.Logger) *Reconciler {
	return &Reconciler{repo: repo, logger: logger, now: time.Now}
}

func (r *Reconciler) Run(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: r.now().UTC()}

	checks := []func(ctx context.Context) ([]Discrepancy, error){
		func(ctx context.Context) ([]Discrepancy, error) { return r.repo.OrderTotalDrift(ctx, domain.OrderKindSales) },
		func(ctx context.Context) ([]Discrepancy, error) { return r.repo.OrderTotalDrift(ctx, domain.OrderKindPurchase) },
		func(ctx context.Context) ([]Discrepancy, error) { return r.repo.LineTotalDrift(ctx, domain.OrderKindSales) },
		func(ctx context.Context) ([]Discrepancy, error) { return r.repo.LineTotalDrift(ctx, domain.OrderKindPurchase) },
		r.repo.InvoicePaidDrift,
		r.repo.StockDrift,
	}

	results := make([][]Discrepancy, len(checks))
	g, gctx := errgroup.WithContext(ctx)
	for i, check := range checks {
		g.Go(func() error {
			found, err := check(gctx)
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Error("reconciliation failed", zap.Error(err))
		return nil, err
	}

	report.Discrepancies = []Discrepancy{}
	for _, found := range results {
		report.Discrepancies = append(report.Discrepancies, found...)
	}
	report.FinishedAt = r.now().UTC()

	for _, d := range report.Discrepancies {
		r.logger.Warn("ledger drift detected",
			zap.String("check", d.Check),
			zap.String("entity", d.Entity),
			zap.Uint("entityId", d.EntityID),
			zap.String("reference", d.Reference),
			zap.String("stored", d.Stored.String()),
			zap.String("expected", d.Expected.String()),
		)
	}

	r.logger.Info("reconciliation finished",
		zap.Int("discrepancies", len(report.Discrepancies)),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
	)

	return report, nil
}
