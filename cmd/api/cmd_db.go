package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/services/account"
)

// skillhive migrate: create or update the schema and exit.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer s.Close()
		fmt.Println("✅  Schema up to date")
		return nil
	},
}

var (
	adminName     string
	adminPassword string
)

// skillhive create-admin: register the ADMIN_EMAIL account.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the account for ADMIN_EMAIL",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(adminPassword) < 6 {
			return errors.New("--password must be at least 6 characters")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		u, err := account.New(s, cfg.AdminEmail, nil).CreateAdmin(cmd.Context(), adminName, adminPassword)
		if err != nil {
			return err
		}
		fmt.Printf("✅  Admin %s created (id %d)\n", u.Email, u.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "Administrator", "display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "login password")
	_ = createAdminCmd.MarkFlagRequired("password")
}
