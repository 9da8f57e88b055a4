// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only finished-run summaries are stored. Particle state is never persisted.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-sand/internal/telemetry"
)

// DefaultPath is where run history lives unless --db says otherwise.
const DefaultPath = "~/.sand/history.db"

// timeLayout keeps a fixed width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// ModeStats aggregates every stored run of one mode.
type ModeStats struct {
	Mode       string
	Runs       int
	TotalTicks uint64
	BestPeak   int
	Longest    time.Duration
	Failures   int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
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

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT 'local',
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			resets INTEGER NOT NULL DEFAULT 0,
			failures INTEGER NOT NULL DEFAULT 0,
			peak_population INTEGER NOT NULL DEFAULT 0,
			mean_tick_ms REAL NOT NULL DEFAULT 0,
			p95_tick_ms REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r telemetry.RunSummary) (int64, error) {
	origin := r.Origin
	if origin == "" {
		origin = "local"
	}
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (mode, origin, started_at, duration_ms, ticks, resets, failures, peak_population, mean_tick_ms, p95_tick_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Mode,
		origin,
		r.StartedAt.UTC().Format(timeLayout),
		r.Duration.Milliseconds(),
		int64(r.Ticks),
		r.Resets,
		r.Failures,
		r.PeakPopulation,
		r.MeanTickMS,
		r.P95TickMS,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty mode matches every mode.
func (s *Store) RecentRuns(mode string, limit int) ([]telemetry.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, mode, origin, started_at, duration_ms, ticks, resets, failures,
		        peak_population, mean_tick_ms, p95_tick_ms
		 FROM runs
		 WHERE ? = '' OR mode = ?
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []telemetry.RunSummary
	for rows.Next() {
		var (
			r          telemetry.RunSummary
			startedAt  any
			durationMS int64
			ticks      int64
		)
		if err := rows.Scan(
			&r.ID,
			&r.Mode,
			&r.Origin,
			&startedAt,
			&durationMS,
			&ticks,
			&r.Resets,
			&r.Failures,
			&r.PeakPopulation,
			&r.MeanTickMS,
			&r.P95TickMS,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		r.StartedAt = parseTime(startedAt)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Ticks = uint64(ticks)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats aggregates the stored runs of one mode.
// A mode with no runs yields zero stats, not an error.
func (s *Store) Stats(mode string) (ModeStats, error) {
	st := ModeStats{Mode: mode}
	var (
		ticks, longest sql.NullInt64
		peak, failures sql.NullInt64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), SUM(ticks), MAX(peak_population), MAX(duration_ms), SUM(failures)
		 FROM runs
		 WHERE mode = ?`,
		mode,
	).Scan(&st.Runs, &ticks, &peak, &longest, &failures)
	if err != nil {
		return st, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if ticks.Valid {
		st.TotalTicks = uint64(ticks.Int64)
	}
	if peak.Valid {
		st.BestPeak = int(peak.Int64)
	}
	if longest.Valid {
		st.Longest = time.Duration(longest.Int64) * time.Millisecond
	}
	if failures.Valid {
		st.Failures = int(failures.Int64)
	}
	return st, nil
}

// ClearRuns deletes stored runs. An empty mode clears every mode.
func (s *Store) ClearRuns(mode string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR mode = ?", mode, mode)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
