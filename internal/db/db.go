package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import for side-effects only
)

// Connect opens the local import journal and ensures the schema exists.
// It automatically applies recommended settings for concurrency (WAL mode).
func Connect(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	// Use robust connection settings to prevent "database locked" errors
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL", dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}

	if err = createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return db, nil
}

// createSchema is private as it's only called by Connect.
func createSchema(db *sql.DB) error {
	runsTable := `
	CREATE TABLE IF NOT EXISTS import_runs (
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  xlsx_path TEXT NOT NULL,
	  profile_id TEXT NOT NULL,
	  status TEXT NOT NULL,
	  rows_parsed INTEGER NOT NULL,
	  rows_sent INTEGER NOT NULL,
	  dry_run INTEGER NOT NULL DEFAULT 0,
	  outcome TEXT NOT NULL,
	  started_at TIMESTAMP NOT NULL,
	  finished_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON import_runs(started_at);
	`
	_, err := db.Exec(runsTable)
	return err
}

// ImportRun is one journal entry: a single invocation of the import pipeline.
type ImportRun struct {
	ID         int64
	XlsxPath   string
	ProfileID  string
	Status     string
	RowsParsed int
	RowsSent   int
	DryRun     bool
	Outcome    string // "ok" or the failure text
	StartedAt  time.Time
	FinishedAt time.Time
}

// RecordRun appends one entry to the journal.
func RecordRun(db *sql.DB, run ImportRun) error {
	_, err := db.Exec(`
		INSERT INTO import_runs
		  (xlsx_path, profile_id, status, rows_parsed, rows_sent, dry_run, outcome, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.XlsxPath,
		run.ProfileID,
		run.Status,
		run.RowsParsed,
		run.RowsSent,
		run.DryRun,
		run.Outcome,
		run.StartedAt,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent journal entries, newest first.
func ListRuns(db *sql.DB, limit int) ([]ImportRun, error) {
	rows, err := db.Query(`
		SELECT id, xlsx_path, profile_id, status, rows_parsed, rows_sent, dry_run, outcome, started_at, finished_at
		FROM import_runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(
			&r.ID, &r.XlsxPath, &r.ProfileID, &r.Status,
			&r.RowsParsed, &r.RowsSent, &r.DryRun, &r.Outcome,
			&r.StartedAt, &r.FinishedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
