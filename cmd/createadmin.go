package main

import (
	"context"
	"fmt"
	"time"

	"review-backend/internal/config"
	"review-backend/internal/database"
	"review-backend/internal/models"
	"review-backend/internal/repository"

	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminEmail    string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a superuser account",
	Long:  "Creates a user with the admin role and the superuser flag. The account signs in through the normal email confirmation flow.",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "username for the new admin (required)")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "email for the new admin (required)")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := setupLogger()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepository(db)

	existing, err := users.FindByUsername(ctx, adminUsername)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("user %q already exists", adminUsername)
	}

	user := &models.User{
		Username:    adminUsername,
		Email:       adminEmail,
		Role:        models.RoleAdmin,
		IsSuperuser: true,
	}
	if err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.WithField("username", user.Username).Info("Admin account created")
	return nil
}
