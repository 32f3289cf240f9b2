package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bizledger/internal/auth"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed bearer token for a user",
		Example: `  bizledger token --user 7 --role inventory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer rt.logger.Sync()

			if rt.cfg.Auth.JWTSecret == "" {
				return errors.New("AUTH_JWT_SECRET must be set to mint tokens")
			}

			userID, _ := cmd.Flags().GetInt("user")
			role, _ := cmd.Flags().GetString("role")
			if userID <= 0 {
				return errors.New("--user must be a positive user id")
			}
			if !auth.IsKnownRole(role) {
				return fmt.Errorf("unknown role %q", role)
			}

			token, err := auth.NewTokenManager(rt.cfg.Auth.JWTSecret, rt.cfg.Auth.TokenTTL).Issue(auth.Actor{ID: userID, Role: role})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Int("user", 0, "user id carried in the token subject")
	cmd.Flags().String("role", auth.RoleEmployee, "role claim: admin, manager, inventory, finance or employee")
	return cmd
}
