package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/BoyarinO/dataroot2/pkg/sweep"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("store: run not found")

// Run describes one stored sweep.
type Run struct {
	ID        string
	CreatedAt time.Time
	Source    string
	NumTrain  int
	NumTest   int
	Dim       int
	KMin      int
	KMax      int
	KStep     int
}

// Row is a stored per-k result. Misclassified points are not persisted, only their count.
type Row struct {
	K             int
	Accuracy      float64
	Elapsed       time.Duration
	Misclassified int
}

// Store keeps sweep runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open results database: %w", err)
	}
	// one connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure results database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// SaveRun stores run and its results in one transaction. An empty run.ID is
// replaced by a new UUID and a zero CreatedAt by the current time. The id is returned.
func (s *Store) SaveRun(ctx context.Context, run Run, results []sweep.Result) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, source, num_train, num_test, dim, kmin, kmax, kstep)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Source,
		run.NumTrain, run.NumTest, run.Dim, run.KMin, run.KMax, run.KStep); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, position, k, accuracy, elapsed_ns, misclassified)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, r := range results {
		if _, err := stmt.ExecContext(ctx, run.ID, i, r.K, r.Accuracy, int64(r.Elapsed), len(r.Misclassified)); err != nil {
			return "", fmt.Errorf("failed to insert result for k=%d: %w", r.K, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListRuns returns every stored run, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, source, num_train, num_test, dim, kmin, kmax, kstep
		FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err := rows.Scan(&r.ID, &created, &r.Source, &r.NumTrain, &r.NumTest, &r.Dim, &r.KMin, &r.KMax, &r.KStep); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("run %s: bad created_at %q: %w", r.ID, created, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Results returns the per-k rows of a run in sweep order.
func (s *Store) Results(ctx context.Context, runID string) ([]Row, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT k, accuracy, elapsed_ns, misclassified
		FROM results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r  Row
			ns int64
		)
		if err := rows.Scan(&r.K, &r.Accuracy, &ns, &r.Misclassified); err != nil {
			return nil, err
		}
		r.Elapsed = time.Duration(ns)
		out = append(out, r)
	}
	return out, rows.Err()
}
