// Package storage provides persistence backends for player progress and the
// pull attempt history. SQLite uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-turnip/internal/game"
	"github.com/vovakirdan/tui-turnip/internal/progress"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

// SQLite manages the database connection for progress and attempt history.
type SQLite struct {
	db *sql.DB
}

// Attempt is a single recorded pull.
type Attempt struct {
	ID        int64
	Profile   string
	SessionID string
	LevelID   int
	Placed    int
	Total     int
	Required  int
	Outcome   string
	CreatedAt time.Time
}

// LevelStats aggregates the attempts of one profile on one level.
type LevelStats struct {
	LevelID    int
	Attempts   int
	Successes  int
	BestTotal  int
	LastPlayed time.Time
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLite, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLite{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLite) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT PRIMARY KEY,
			blob TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS pull_attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			session_id TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			placed INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL,
			required INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_pull_attempts_profile ON pull_attempts(profile, level_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements progress.Backend.
func (s *SQLite) Load(ctx context.Context, profile string) ([]byte, error) {
	var blob string
	err := s.db.QueryRowContext(ctx,
		"SELECT blob FROM progress WHERE profile = ?",
		profile,
	).Scan(&blob)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, progress.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return []byte(blob), nil
}

// Save implements progress.Backend.
func (s *SQLite) Save(ctx context.Context, profile string, blob []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (profile, blob, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		profile, string(blob),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// Delete implements progress.Backend.
func (s *SQLite) Delete(ctx context.Context, profile string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM progress WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot delete progress: %w", err)
	}
	return nil
}

// Profiles lists every profile with saved progress.
func (s *SQLite) Profiles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT profile FROM progress ORDER BY profile")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return profiles, nil
}

// RecordAttempt implements game.AttemptRecorder.
func (s *SQLite) RecordAttempt(ctx context.Context, rec game.AttemptRecord) error {
	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pull_attempts
		 (profile, session_id, level_id, placed, total, required, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Profile,
		rec.SessionID,
		rec.LevelID,
		rec.Placed,
		rec.Total,
		rec.Required,
		rec.Outcome,
		at.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save attempt: %w", err)
	}
	return nil
}

// Ensure SQLite implements the game and progress collaborators.
var (
	_ game.AttemptRecorder = (*SQLite)(nil)
	_ progress.Backend     = (*SQLite)(nil)
)

// RecentAttempts returns the newest attempts of profile, optionally limited
// to one level (levelID 0 means all levels).
func (s *SQLite) RecentAttempts(ctx context.Context, profile string, levelID, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile, session_id, level_id, placed, total, required, outcome, created_at
		 FROM pull_attempts
		 WHERE profile = ? AND (? = 0 OR level_id = ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		profile, levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var createdAt any
		if err := rows.Scan(
			&a.ID,
			&a.Profile,
			&a.SessionID,
			&a.LevelID,
			&a.Placed,
			&a.Total,
			&a.Required,
			&a.Outcome,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.CreatedAt = parseTime(createdAt)
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return attempts, nil
}

// LevelStatsFor aggregates attempts of profile per level, ordered by level.
func (s *SQLite) LevelStatsFor(ctx context.Context, profile string) ([]LevelStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level_id,
		        COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(total), 0),
		        MAX(created_at)
		 FROM pull_attempts
		 WHERE profile = ?
		 GROUP BY level_id
		 ORDER BY level_id`,
		profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Attempts, &st.Successes, &st.BestTotal, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearAttempts deletes the attempt history of profile.
func (s *SQLite) ClearAttempts(ctx context.Context, profile string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM pull_attempts WHERE profile = ?", profile); err != nil {
		return fmt.Errorf("storage: cannot clear attempts: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTimeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
