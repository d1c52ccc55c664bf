package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsportal/internal/domain/entity"
	"newsportal/internal/repository"
)

type AdminRepo struct {
	db *sql.DB
}

func NewAdminRepo(db *sql.DB) repository.AdminRepository {
	return &AdminRepo{db: db}
}

func (repo *AdminRepo) GetByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	const query = `
SELECT id, email, name, password_hash
FROM admin_users
WHERE email = $1
LIMIT 1`
	var admin entity.AdminUser
	err := repo.db.QueryRowContext(ctx, query, email).
		Scan(&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByEmail: %w", err)
	}
	return &admin, nil
}

func (repo *AdminRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM admin_users`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *AdminRepo) Create(ctx context.Context, admin *entity.AdminUser) error {
	const query = `
INSERT INTO admin_users (email, name, password_hash)
VALUES ($1, $2, $3)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, admin.Email, admin.Name, admin.PasswordHash).
		Scan(&admin.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
