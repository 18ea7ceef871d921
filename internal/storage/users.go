package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CreateUser inserts a new account on the free tier. Returns ErrEmailTaken
// if the email already has an account.
func (db *DB) CreateUser(ctx context.Context, email, hashedPassword string) (User, error) {
	var u User
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (id, email, hashed_password, subscription_tier)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, hashed_password, subscription_tier, is_active, created_at, updated_at
	`, uuid.New(), email, hashedPassword, TierFree).Scan(
		&u.ID, &u.Email, &u.HashedPassword, &u.Tier, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns the user with the given email, or ErrNotFound.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := db.Pool.QueryRow(ctx, `
		SELECT id, email, hashed_password, subscription_tier, is_active, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.Tier, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// GetUserByID returns the user with the given ID, or ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	var u User
	err := db.Pool.QueryRow(ctx, `
		SELECT id, email, hashed_password, subscription_tier, is_active, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.Tier, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("getting user by id: %w", err)
	}
	return u, nil
}

// UpdateUserTier changes a user's subscription tier.
func (db *DB) UpdateUserTier(ctx context.Context, id uuid.UUID, tier Tier) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE users SET subscription_tier = $2, updated_at = NOW() WHERE id = $1
	`, id, tier)
	if err != nil {
		return fmt.Errorf("updating user tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
