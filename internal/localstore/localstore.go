// Package localstore keeps a small SQLite log of recommendations made by the
// offline CLI, so past advice can be reviewed without a server account.
package localstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/volumeopt/internal/volume"
	_ "modernc.org/sqlite"
)

// Entry is one recorded recommendation.
type Entry struct {
	ID            int64
	MuscleGroup   string
	TrainingLevel string
	CurrentSets   int
	Outcome       string
	TargetSets    *int
	Progress      bool
	Recovered     bool
	CreatedAt     time.Time
}

// DB is the local recommendation log.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite log at dir/history.db.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS recommendations (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		muscle_group   TEXT NOT NULL,
		training_level TEXT NOT NULL,
		current_sets   INTEGER NOT NULL,
		outcome        TEXT NOT NULL,
		target_sets    INTEGER,
		progress       INTEGER NOT NULL,
		recovered      INTEGER NOT NULL,
		created_at     TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating recommendations table: %w", err)
	}

	return &DB{db: db}, nil
}

// Record appends a recommendation to the log.
func (d *DB) Record(req volume.Request, rec volume.Recommendation) error {
	_, err := d.db.Exec(
		`INSERT INTO recommendations (muscle_group, training_level, current_sets, outcome, target_sets, progress, recovered)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(req.MuscleGroup), string(req.TrainingLevel), req.CurrentSets,
		string(rec.Outcome), rec.TargetSets, req.Progress, req.Recovered,
	)
	return err
}

// Recent returns up to limit entries, newest first, optionally filtered by
// muscle group.
func (d *DB) Recent(muscleGroup string, limit int) ([]Entry, error) {
	query := `SELECT id, muscle_group, training_level, current_sets, outcome, target_sets, progress, recovered, created_at
		FROM recommendations`
	args := []any{}
	if muscleGroup != "" {
		query += ` WHERE muscle_group = ?`
		args = append(args, muscleGroup)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var target sql.NullInt64
		if err := rows.Scan(&e.ID, &e.MuscleGroup, &e.TrainingLevel, &e.CurrentSets,
			&e.Outcome, &target, &e.Progress, &e.Recovered, &e.CreatedAt); err != nil {
			return nil, err
		}
		if target.Valid {
			n := int(target.Int64)
			e.TargetSets = &n
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the log database.
func (d *DB) Close() error {
	return d.db.Close()
}
