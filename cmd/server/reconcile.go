package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bizledger/internal/reconcile"
)

func newReconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute stored ledger aggregates and report drift",
		Long: `Recompute order totals, line totals, invoice paid amounts and product
stock from their source rows and print every mismatch as JSON.

The command exits with a non-zero status when drift is found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer rt.logger.Sync()

			db, err := rt.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := reconcile.NewReconciler(reconcile.NewMySQLRepository(db), rt.logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			if !report.Clean() {
				return fmt.Errorf("ledger drift detected: %d discrepancies", len(report.Discrepancies))
			}
			return nil
		},
	}
}
