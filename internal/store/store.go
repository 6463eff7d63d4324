// Package store persists saved test runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/wcagcheck/internal/models"
)

// ErrRunNotFound is returned when no saved run has the requested id
var ErrRunNotFound = errors.New("test run not found")

// ErrNameRequired is returned when a run is saved without a name
var ErrNameRequired = errors.New("test run name is required")

// timeFormat is fixed width so created_at sorts chronologically as text
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages the SQLite database of saved runs
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// NewStore opens the database at dbPath, creating parent directories and
// applying pending migrations. ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	// busy_timeout first so the rest wait on locks held by other processes.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	s := &Store{db: db, dbPath: dbPath, now: time.Now}
	if err := s.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return s, nil
}

// execWithRetry retries a statement with exponential backoff while the
// database is locked
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path the store was opened with
func (s *Store) Path() string {
	return s.dbPath
}

// SaveRun stores results under name and returns the saved run
func (s *Store) SaveRun(ctx context.Context, name string, results []models.TestResult) (*models.TestRun, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	run := &models.TestRun{
		ID:      uuid.New().String(),
		Name:    name,
		Date:    s.now().UTC(),
		Results: append([]models.TestResult(nil), results...),
		Summary: models.Summarize(results),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO test_runs (id, name, created_at) VALUES (?, ?, ?)`,
		run.ID, run.Name, run.Date.Format(timeFormat))
	if err != nil {
		return nil, fmt.Errorf("insert test run: %w", err)
	}

	for i, r := range run.Results {
		criterion, err := json.Marshal(r.Criterion)
		if err != nil {
			return nil, fmt.Errorf("marshal criterion %s: %w", r.Criterion.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO test_results (run_id, position, criterion_id, criterion, status, notes, screenshot)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, r.Criterion.ID, string(criterion), string(r.Status), r.Notes, r.Screenshot)
		if err != nil {
			return nil, fmt.Errorf("insert result %s: %w", r.Criterion.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit test run: %w", err)
	}
	return run, nil
}

// ListRuns returns every saved run, newest first. Results are not loaded;
// Summary is.
func (s *Store) ListRuns(ctx context.Context) ([]*models.TestRun, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.name, r.created_at,
       COUNT(t.position),
       COALESCE(SUM(t.status = 'pass'), 0),
       COALESCE(SUM(t.status = 'fail'), 0),
       COALESCE(SUM(t.status = 'na'), 0)
FROM test_runs r
LEFT JOIN test_results t ON t.run_id = r.id
GROUP BY r.id
ORDER BY r.created_at DESC, r.rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query test runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.TestRun
	for rows.Next() {
		run := &models.TestRun{}
		var created string
		sum := &run.Summary
		if err := rows.Scan(&run.ID, &run.Name, &created, &sum.Total, &sum.Passed, &sum.Failed, &sum.NotApplicable); err != nil {
			return nil, fmt.Errorf("scan test run: %w", err)
		}
		sum.Pending = sum.Total - sum.Passed - sum.Failed - sum.NotApplicable
		if run.Date, err = time.Parse(timeFormat, created); err != nil {
			return nil, fmt.Errorf("parse date of run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test runs: %w", err)
	}
	return runs, nil
}

// GetRun loads a run with all of its results
func (s *Store) GetRun(ctx context.Context, id string) (*models.TestRun, error) {
	run := &models.TestRun{ID: id}
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT name, created_at FROM test_runs WHERE id = ?`, id).Scan(&run.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query test run: %w", err)
	}
	if run.Date, err = time.Parse(timeFormat, created); err != nil {
		return nil, fmt.Errorf("parse date of run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT criterion, status, notes, screenshot FROM test_results WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.TestResult
		var criterion, status string
		if err := rows.Scan(&criterion, &status, &r.Notes, &r.Screenshot); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(criterion), &r.Criterion); err != nil {
			return nil, fmt.Errorf("decode criterion: %w", err)
		}
		r.Status = models.Status(status)
		run.Results = append(run.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	run.Summary = models.Summarize(run.Results)
	return run, nil
}

// DeleteRun removes a run and its results
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM test_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete test run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete test run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM test_results WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("delete results: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}
