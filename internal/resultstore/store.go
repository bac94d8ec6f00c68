/*
Package resultstore persists evaluation runs to SQLite so comparisons can
be tracked over time. Each saved run holds the gate verdict plus every
(scenario, strategy) result as JSON.
*/
package resultstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/notewell/notewell/internal/harness"
	"github.com/notewell/notewell/internal/report"
)

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database. ":memory:" gives an
// ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create history directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		gate_passed INTEGER NOT NULL,
		gate_failures TEXT
	);

	CREATE TABLE IF NOT EXISTS run_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		scenario TEXT NOT NULL,
		strategy TEXT NOT NULL,
		result TEXT NOT NULL,
		error TEXT,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_run_results_run ON run_results(run_id);
	CREATE INDEX IF NOT EXISTS idx_run_results_strategy ON run_results(strategy);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunSummary is one row of run history.
type RunSummary struct {
	ID         string
	CreatedAt  time.Time
	GatePassed bool
	Failures   []string
	Results    int
}

// SaveRun persists one evaluation batch and returns its run ID.
func (s *Store) SaveRun(ctx context.Context, results []harness.Result, gate report.Gate) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, gate_passed, gate_failures) VALUES (?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339), boolToInt(gate.Passed), strings.Join(gate.Failures, "\n"))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, r := range results {
		payload, err := json.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("marshal result %s/%s: %w", r.Scenario, r.Strategy, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_results (run_id, scenario, strategy, result, error) VALUES (?, ?, ?, ?, ?)`,
			runID, r.Scenario, r.Strategy, string(payload), r.Metrics.Error)
		if err != nil {
			return "", fmt.Errorf("insert result %s/%s: %w", r.Scenario, r.Strategy, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.gate_passed, r.gate_failures, COUNT(rr.id)
		FROM runs r
		LEFT JOIN run_results rr ON rr.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run      RunSummary
			created  string
			passed   int
			failures sql.NullString
		)
		if err := rows.Scan(&run.ID, &created, &passed, &failures, &run.Results); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, created)
		run.GatePassed = passed != 0
		if failures.Valid && failures.String != "" {
			run.Failures = strings.Split(failures.String, "\n")
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunResults loads every stored result for one run.
func (s *Store) RunResults(ctx context.Context, runID string) ([]harness.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT result FROM run_results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	defer rows.Close()

	var results []harness.Result
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var r harness.Result
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
