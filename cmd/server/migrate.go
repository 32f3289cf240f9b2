package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations and exit",
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

			return rt.migrate(db)
		},
	}
}
