// Package bootstrap prepares application state that must exist before the
// server starts serving, such as the initial administrator account.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"newsportal/internal/domain/entity"
	"newsportal/internal/repository"
)

const minAdminPasswordLength = 12

// ErrWeakAdminPassword is returned when the configured bootstrap password is
// too short to seed an account with.
var ErrWeakAdminPassword = fmt.Errorf("admin password must be at least %d characters", minAdminPasswordLength)

// SeedAdmin creates the first administrator account from the ADMIN_EMAIL,
// ADMIN_NAME and ADMIN_PASSWORD environment variables. It is idempotent: when
// any admin account already exists it does nothing, so a changed environment
// never overwrites live credentials.
func SeedAdmin(ctx context.Context, admins repository.AdminRepository, logger *slog.Logger) error {
	count, err := admins.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	name := strings.TrimSpace(os.Getenv("ADMIN_NAME"))
	password := os.Getenv("ADMIN_PASSWORD")

	if email == "" || password == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set to seed the first admin")
	}
	if len(password) < minAdminPasswordLength {
		return ErrWeakAdminPassword
	}
	if name == "" {
		name = email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &entity.AdminUser{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	logger.Info("seeded initial admin account",
		"email", email,
		"admin_id", admin.ID)
	return nil
}
