// Package auth validates administrator credentials against the admin_users
// table. It is framework-agnostic; HTTP concerns live in handler/http/auth.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"newsportal/internal/domain/entity"
	"newsportal/internal/repository"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so a caller cannot distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials represents a login attempt.
type Credentials struct {
	Email    string
	Password string
}

// Service handles administrator authentication.
type Service struct {
	Admins repository.AdminRepository
}

// Authenticate verifies the credentials and returns the matching admin.
// Returns ErrInvalidCredentials when the email is unknown or the password
// does not match.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (*entity.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.Admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up admin: %w", err)
	}
	if admin == nil {
		// Burn a comparison anyway to keep timing uniform.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000uGZwE3gXGNDSTdrbfW9jWkCUTFBU0sG"), []byte(creds.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}
