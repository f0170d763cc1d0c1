package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erazemk/stockroom/internal/auth"
	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

func newAddUserCmd(a *app) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "adduser <username>",
		Short: "Create an API account with a generated password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.ValidRole(role) {
				return fmt.Errorf("unknown role %q", role)
			}

			database, err := openExisting(a.cfg.DB)
			if err != nil {
				return err
			}
			defer database.Close()

			password, err := generatePassword(16)
			if err != nil {
				return fmt.Errorf("generating password: %w", err)
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			user, err := store.CreateUser(cmd.Context(), database, args[0], hash, role)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User created: %s (%s)\n", user.Username, user.Role)
			fmt.Fprintf(out, "  Password: %s\n", password)
			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", model.RoleUser, "admin, manager or user")
	return cmd
}
