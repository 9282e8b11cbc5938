package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens the archive database at path, creating its directory if
// needed, and applies migrations. ":memory:" opens a private in-memory
// database on a single connection.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}
	if path == ":memory:" {
		// Every connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS fire_behavior_predictions (
		id               TEXT PRIMARY KEY,
		station_id       TEXT NOT NULL DEFAULT '',
		observed_at      TEXT NOT NULL,
		time_bucket      TEXT NOT NULL,
		lat              REAL NOT NULL,
		lon              REAL NOT NULL,
		fuel_type        TEXT NOT NULL,
		fire_type        TEXT NOT NULL,
		intensity_class  INTEGER NOT NULL,
		ros              REAL NOT NULL,
		hfi              REAL NOT NULL,
		cfb              REAL NOT NULL,
		payload          TEXT NOT NULL,
		processed_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_station_time
		ON fire_behavior_predictions (station_id, observed_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_bucket
		ON fire_behavior_predictions (time_bucket)`,
}

// Migrate applies the schema. Statements are idempotent and re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
