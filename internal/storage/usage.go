package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CountUsageToday returns how many metered requests the user has made
// since UTC midnight.
func (db *DB) CountUsageToday(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM usage_logs
		WHERE user_id = $1 AND created_at >= date_trunc('day', NOW() AT TIME ZONE 'UTC')
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting usage: %w", err)
	}
	return count, nil
}

// LogUsage records one metered request against the user's daily quota.
func (db *DB) LogUsage(ctx context.Context, userID uuid.UUID, endpoint string) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO usage_logs (id, user_id, endpoint) VALUES ($1, $2, $3)
	`, uuid.New(), userID, endpoint)
	if err != nil {
		return fmt.Errorf("logging usage: %w", err)
	}
	return nil
}
