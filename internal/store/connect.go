package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:cortex.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/cortex?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS atoms (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  front TEXT NOT NULL,
  back TEXT NOT NULL DEFAULT '',
  knowledge TEXT NOT NULL DEFAULT '',
  tags_json TEXT NOT NULL DEFAULT '[]',
  section_id TEXT NOT NULL DEFAULT '',
  content_json TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS quality_reports (
  atom_id TEXT PRIMARY KEY REFERENCES atoms(id) ON DELETE CASCADE,
  score REAL NOT NULL,
  grade TEXT NOT NULL,
  report_json TEXT NOT NULL,
  graded_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
  atom_id TEXT PRIMARY KEY REFERENCES atoms(id) ON DELETE CASCADE,
  ease REAL NOT NULL,
  interval_days INTEGER NOT NULL DEFAULT 0,
  repetitions INTEGER NOT NULL DEFAULT 0,
  lapses INTEGER NOT NULL DEFAULT 0,
  last_quality INTEGER NOT NULL DEFAULT 0,
  due_at INTEGER NOT NULL,
  reviewed_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS attempts (
  id TEXT PRIMARY KEY,
  atom_id TEXT NOT NULL REFERENCES atoms(id) ON DELETE CASCADE,
  correct INTEGER NOT NULL,
  partial REAL NOT NULL,
  dont_know INTEGER NOT NULL,
  hints_used INTEGER NOT NULL,
  answered_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_atoms_section ON atoms(section_id);
CREATE INDEX IF NOT EXISTS idx_reviews_due ON reviews(due_at);
CREATE INDEX IF NOT EXISTS idx_attempts_atom ON attempts(atom_id);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS atoms (
  id TEXT PRIMARY KEY,
  type TEXT NOT NULL,
  front TEXT NOT NULL,
  back TEXT NOT NULL DEFAULT '',
  knowledge TEXT NOT NULL DEFAULT '',
  tags_json TEXT NOT NULL DEFAULT '[]',
  section_id TEXT NOT NULL DEFAULT '',
  content_json TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS quality_reports (
  atom_id TEXT PRIMARY KEY REFERENCES atoms(id) ON DELETE CASCADE,
  score DOUBLE PRECISION NOT NULL,
  grade TEXT NOT NULL,
  report_json TEXT NOT NULL,
  graded_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
  atom_id TEXT PRIMARY KEY REFERENCES atoms(id) ON DELETE CASCADE,
  ease DOUBLE PRECISION NOT NULL,
  interval_days INTEGER NOT NULL DEFAULT 0,
  repetitions INTEGER NOT NULL DEFAULT 0,
  lapses INTEGER NOT NULL DEFAULT 0,
  last_quality INTEGER NOT NULL DEFAULT 0,
  due_at BIGINT NOT NULL,
  reviewed_at BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS attempts (
  id TEXT PRIMARY KEY,
  atom_id TEXT NOT NULL REFERENCES atoms(id) ON DELETE CASCADE,
  correct INTEGER NOT NULL,
  partial DOUBLE PRECISION NOT NULL,
  dont_know INTEGER NOT NULL,
  hints_used INTEGER NOT NULL,
  answered_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_atoms_section ON atoms(section_id);
CREATE INDEX IF NOT EXISTS idx_reviews_due ON reviews(due_at);
CREATE INDEX IF NOT EXISTS idx_attempts_atom ON attempts(atom_id);
`
