// Package storage keeps a journal of finished mole runs in SQLite so they
// can be listed and replayed. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/mole-arcade/internal/mole"
)

var (
	// ErrRunNotFound is returned when no run matches an ID or prefix.
	ErrRunNotFound = errors.New("storage: run not found")
	// ErrAmbiguousRun is returned when an ID prefix matches more than one run.
	ErrAmbiguousRun = errors.New("storage: ambiguous run id")
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one journaled play-through.
type Run struct {
	ID               string
	Seed             int64
	CountdownSeconds int
	SessionSeconds   int
	SurfaceW         float64
	SurfaceH         float64
	TargetW          float64
	TargetH          float64
	Events           string
	Score            int
	CreatedAt        time.Time
}

// Journal rebuilds the session journal stored in the run.
func (r Run) Journal() (mole.Journal, error) {
	events, err := mole.DecodeEvents(r.Events)
	if err != nil {
		return mole.Journal{}, fmt.Errorf("run %s: %w", r.ID, err)
	}
	return mole.Journal{
		Config: mole.Config{
			CountdownSeconds: r.CountdownSeconds,
			SessionSeconds:   r.SessionSeconds,
			Bounds: mole.Bounds{
				SurfaceW: r.SurfaceW,
				SurfaceH: r.SurfaceH,
				TargetW:  r.TargetW,
				TargetH:  r.TargetH,
			},
		},
		Seed:   r.Seed,
		Events: events,
	}, nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			countdown_secs INTEGER NOT NULL,
			session_secs INTEGER NOT NULL,
			surface_w REAL NOT NULL,
			surface_h REAL NOT NULL,
			target_w REAL NOT NULL,
			target_h REAL NOT NULL,
			events TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveRun records a finished run and returns its generated ID.
func (s *Store) SaveRun(j mole.Journal, final mole.Snapshot) (string, error) {
	id := uuid.NewString()
	b := j.Config.Bounds

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, seed, countdown_secs, session_secs, surface_w, surface_h, target_w, target_h, events, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, j.Seed,
		j.Config.CountdownSeconds, j.Config.SessionSeconds,
		b.SurfaceW, b.SurfaceH, b.TargetW, b.TargetH,
		mole.EncodeEvents(j.Events), final.Score,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

const runColumns = `id, seed, countdown_secs, session_secs, surface_w, surface_h,
	target_w, target_h, events, score, created_at`

// FindRun returns the run whose ID equals or starts with idPrefix. The prefix
// is matched literally.
func (s *Store) FindRun(idPrefix string) (*Run, error) {
	if idPrefix == "" {
		return nil, ErrRunNotFound
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR substr(id, 1, length(?)) = ? LIMIT 2`,
		idPrefix, idPrefix, idPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}

	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, idPrefix)
	case 1:
		return &runs[0], nil
	default:
		for i := range runs {
			if runs[i].ID == idPrefix {
				return &runs[i], nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, idPrefix)
	}
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// DeleteRun removes a run by exact ID.
func (s *Store) DeleteRun(id string) error {
	res, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Seed,
			&r.CountdownSeconds, &r.SessionSeconds,
			&r.SurfaceW, &r.SurfaceH, &r.TargetW, &r.TargetH,
			&r.Events, &r.Score, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
