package storage

import (
	"context"
	"fmt"
)

// SystemStats returns system-wide counters for the admin endpoint.
func (db *DB) SystemStats(ctx context.Context) (AdminStats, error) {
	stats := AdminStats{UsersByTier: map[string]int{}}

	rows, err := db.Pool.Query(ctx, `
		SELECT subscription_tier, COUNT(*) FROM users GROUP BY subscription_tier
	`)
	if err != nil {
		return AdminStats{}, fmt.Errorf("counting users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return AdminStats{}, fmt.Errorf("scanning user count: %w", err)
		}
		stats.UsersByTier[tier] = count
		stats.TotalUsers += count
	}
	if err := rows.Err(); err != nil {
		return AdminStats{}, err
	}

	err = db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM usage_logs
		WHERE created_at >= date_trunc('day', NOW() AT TIME ZONE 'UTC')
	`).Scan(&stats.RequestsToday)
	if err != nil {
		return AdminStats{}, fmt.Errorf("counting requests today: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM training_history`).Scan(&stats.TotalHistoryEntries)
	if err != nil {
		return AdminStats{}, fmt.Errorf("counting history: %w", err)
	}

	return stats, nil
}
