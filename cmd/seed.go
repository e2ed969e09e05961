/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/apiserver/config"
	"github.com/inkwell-blog/apiserver/internal/db"
	"github.com/inkwell-blog/apiserver/internal/store"
	"github.com/inkwell-blog/apiserver/types"
)

// seedCmd represents the seed command.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed initial data",
}

var seedAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create the admin account from APP_ADMIN* env vars",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		email := strings.TrimSpace(cfg.Admin.Email)
		if email == "" || cfg.Admin.Password == "" {
			return errors.New("APP_ADMIN_EMAIL and APP_ADMIN_PASS are required")
		}

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		users := store.NewUserRepository(dbConn)

		if _, err := users.GetByEmail(cmd.Context(), email); err == nil {
			return fmt.Errorf("admin %s already exists", email)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		admin, err := users.Create(cmd.Context(), types.User{
			Name:          cfg.Admin.Name,
			Email:         email,
			Role:          types.RoleAdmin,
			Status:        types.UserActive,
			EmailVerified: true,
			PasswordHash:  string(hashed),
		})
		if err != nil {
			return err
		}

		fmt.Printf("admin %s created (%s)\n", admin.Email, admin.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedAdminCmd)
}
