package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ffmtest/internal/domain"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	environment TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	total       INTEGER NOT NULL,
	passed      INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	warnings    INTEGER NOT NULL,
	report_path TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at);
`

// Run is one row of the run history
type Run struct {
	ID          string
	Environment string
	StartedAt   time.Time
	Summary     domain.Summary
	ReportPath  string
}

// History records completed runs in a local SQLite database, so past results
// can be listed without parsing every report file.
type History struct {
	db *sql.DB
}

// OpenHistory opens (or creates) the history database at dsn.
// For in-memory use pass "file::memory:?cache=shared".
func OpenHistory(dsn string) (*History, error) {
	if !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	} else if !strings.Contains(dsn, "_journal_mode") {
		dsn += "&_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close closes the underlying database connection
func (h *History) Close() error {
	return h.db.Close()
}

// Append records a finished run and returns its generated ID
func (h *History) Append(report *domain.Report, reportPath string) (string, error) {
	id := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO runs (id, environment, started_at, total, passed, failed, skipped, warnings, report_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, report.Environment, report.Timestamp,
		report.Summary.Total, report.Summary.Passed, report.Summary.Failed,
		report.Summary.Skipped, report.Summary.Warnings, reportPath,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// Recent returns the n most recent runs, newest first
func (h *History) Recent(n int) ([]Run, error) {
	rows, err := h.db.Query(`
		SELECT id, environment, started_at, total, passed, failed, skipped, warnings, report_path
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedStr string
		if err := rows.Scan(&r.ID, &r.Environment, &startedStr,
			&r.Summary.Total, &r.Summary.Passed, &r.Summary.Failed,
			&r.Summary.Skipped, &r.Summary.Warnings, &r.ReportPath); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, startedStr)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Count returns the total number of recorded runs
func (h *History) Count() (int, error) {
	var count int
	err := h.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count)
	return count, err
}
