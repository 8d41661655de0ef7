package store

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// GetMigrations returns all available migrations in order
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_sweep_tables",
			SQL: `
				CREATE TABLE IF NOT EXISTS runs (
					id TEXT PRIMARY KEY,
					created_at TEXT NOT NULL,
					source TEXT NOT NULL DEFAULT '',
					num_train INTEGER NOT NULL,
					num_test INTEGER NOT NULL,
					dim INTEGER NOT NULL,
					kmin INTEGER NOT NULL,
					kmax INTEGER NOT NULL,
					kstep INTEGER NOT NULL
				);

				CREATE TABLE IF NOT EXISTS results (
					run_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					k INTEGER NOT NULL,
					accuracy REAL NOT NULL,
					elapsed_ns INTEGER NOT NULL,
					misclassified INTEGER NOT NULL,
					PRIMARY KEY (run_id, position),
					FOREIGN KEY (run_id) REFERENCES runs (id) ON DELETE CASCADE
				);

				CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs (created_at);
			`,
		},
	}
}

func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range GetMigrations() {
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, m.Version).Scan(&count); err != nil {
			return fmt.Errorf("failed to check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.Version, m.Name); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
