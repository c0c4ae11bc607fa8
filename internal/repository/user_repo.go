package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"deskhive/internal/db"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	query := `SELECT id, org_id, email, password_hash, created_at FROM users WHERE email = $1`
	var u db.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.OrgID, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *db.User) error {
	query := `
		INSERT INTO users (org_id, email, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at`
	return r.DB.QueryRowContext(ctx, query, u.OrgID, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
}
