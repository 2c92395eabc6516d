package utils

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/princinho/schoolpanel/auth"
	"github.com/princinho/schoolpanel/models"
)

type AdminSeeder interface {
	SeedAdmin(ctx context.Context, user *models.User) (bool, error)
}

// SeedAdminUser makes sure an active admin with email exists. An existing
// account with that email is left untouched.
func SeedAdminUser(ctx context.Context, seeder AdminSeeder, email, password string, cost int, logger *slog.Logger) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD")
	}

	hash, err := auth.HashPasswordCost(password, cost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	created, err := seeder.SeedAdmin(ctx, &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		FullName:       auth.BootstrapFullName,
		Role:           models.RoleAdmin,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
		HashedPassword: hash,
	})
	if err != nil {
		return err
	}

	if created {
		logger.Info("admin user seeded", slog.String("email", email))
	} else {
		logger.Info("admin user already exists", slog.String("email", email))
	}
	return nil
}
