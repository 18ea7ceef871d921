package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateAPIKey inserts a new API key for the user.
func (db *DB) CreateAPIKey(ctx context.Context, userID uuid.UUID, name, key string) (APIKey, error) {
	var k APIKey
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO api_keys (id, key, name, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, key, name, user_id, is_active, created_at, last_used_at
	`, uuid.New(), key, name, userID).Scan(
		&k.ID, &k.Key, &k.Name, &k.UserID, &k.IsActive, &k.CreatedAt, &k.LastUsedAt)
	if err != nil {
		return APIKey{}, fmt.Errorf("creating api key: %w", err)
	}
	return k, nil
}

// ListAPIKeys returns all API keys belonging to the user, newest first.
func (db *DB) ListAPIKeys(ctx context.Context, userID uuid.UUID) ([]APIKey, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, key, name, user_id, is_active, created_at, last_used_at
		FROM api_keys WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing api keys: %w", err)
	}
	defer rows.Close()

	keys := []APIKey{}
	for rows.Next() {
		var k APIKey
		if err := rows.Scan(&k.ID, &k.Key, &k.Name, &k.UserID, &k.IsActive, &k.CreatedAt, &k.LastUsedAt); err != nil {
			return nil, fmt.Errorf("scanning api key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// DeleteAPIKey removes a key owned by the user. Returns ErrNotFound if no
// such key exists (or it belongs to someone else).
func (db *DB) DeleteAPIKey(ctx context.Context, userID, keyID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `
		DELETE FROM api_keys WHERE id = $1 AND user_id = $2
	`, keyID, userID)
	if err != nil {
		return fmt.Errorf("deleting api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUserByAPIKey resolves an active API key to its active owner and
// stamps last_used_at. Returns ErrNotFound for unknown, revoked, or
// deactivated credentials.
func (db *DB) GetUserByAPIKey(ctx context.Context, key string) (User, error) {
	var u User
	err := db.Pool.QueryRow(ctx, `
		UPDATE api_keys k
		SET last_used_at = NOW()
		FROM users u
		WHERE k.key = $1 AND k.is_active AND k.user_id = u.id AND u.is_active
		RETURNING u.id, u.email, u.hashed_password, u.subscription_tier, u.is_active, u.created_at, u.updated_at
	`, key).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.Tier, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("resolving api key: %w", err)
	}
	return u, nil
}
