package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InsertHistory records one recommendation request/response pair.
func (db *DB) InsertHistory(ctx context.Context, e HistoryEntry) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO training_history
			(id, user_id, muscle_group, current_sets, outcome, target_sets, training_level, progress, recovered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, e.UserID, e.MuscleGroup, e.CurrentSets, e.Outcome, e.TargetSets, e.TrainingLevel, e.Progress, e.Recovered)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting history: %w", err)
	}
	return id, nil
}

// QueryHistory returns the user's history, newest first, optionally
// filtered by muscle group. limit caps the row count.
func (db *DB) QueryHistory(ctx context.Context, userID uuid.UUID, muscleGroup string, limit int) ([]HistoryEntry, error) {
	query := `
		SELECT id, user_id, muscle_group, current_sets, outcome, target_sets, training_level, progress, recovered, created_at
		FROM training_history
		WHERE user_id = $1`
	args := []any{userID}

	if muscleGroup != "" {
		query += ` AND muscle_group = $2`
		args = append(args, muscleGroup)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.MuscleGroup, &e.CurrentSets, &e.Outcome,
			&e.TargetSets, &e.TrainingLevel, &e.Progress, &e.Recovered, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UserAnalytics aggregates a user's full history: totals, average current
// volume per muscle group, progress counts, and the ten most recent rows.
func (db *DB) UserAnalytics(ctx context.Context, userID uuid.UUID) (Analytics, error) {
	a := Analytics{
		MuscleGroupsTracked: []string{},
		AverageWeeklyVolume: map[string]float64{},
		ProgressTrend:       map[string]int{"progressing": 0, "stagnant": 0},
		RecentHistory:       []HistoryEntry{},
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT muscle_group, AVG(current_sets), COUNT(*),
		       COUNT(*) FILTER (WHERE progress), COUNT(*) FILTER (WHERE NOT progress)
		FROM training_history
		WHERE user_id = $1
		GROUP BY muscle_group
		ORDER BY muscle_group
	`, userID)
	if err != nil {
		return Analytics{}, fmt.Errorf("aggregating history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var group string
		var avg float64
		var total, progressing, stagnant int
		if err := rows.Scan(&group, &avg, &total, &progressing, &stagnant); err != nil {
			return Analytics{}, fmt.Errorf("scanning aggregate: %w", err)
		}
		a.MuscleGroupsTracked = append(a.MuscleGroupsTracked, group)
		a.AverageWeeklyVolume[group] = avg
		a.TotalLogged += total
		a.ProgressTrend["progressing"] += progressing
		a.ProgressTrend["stagnant"] += stagnant
	}
	if err := rows.Err(); err != nil {
		return Analytics{}, err
	}

	recent, err := db.QueryHistory(ctx, userID, "", 10)
	if err != nil {
		return Analytics{}, err
	}
	a.RecentHistory = recent

	return a, nil
}
