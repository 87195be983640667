package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// DefaultUserID identifies the single local user all entities belong to.
const DefaultUserID = "local"

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS time_entries (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id        TEXT NOT NULL DEFAULT 'local',
		clock_in       TEXT NOT NULL,
		clock_out      TEXT,
		total_duration INTEGER NOT NULL DEFAULT 0,
		break_duration INTEGER NOT NULL DEFAULT 0,
		billable_hours REAL NOT NULL DEFAULT 0,
		status         TEXT NOT NULL DEFAULT 'active',
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_entries_clock_in ON time_entries(clock_in);
	CREATE INDEX IF NOT EXISTS idx_entries_status   ON time_entries(user_id, status);

	CREATE TABLE IF NOT EXISTS breaks (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id   INTEGER NOT NULL REFERENCES time_entries(id),
		start_time TEXT NOT NULL,
		end_time   TEXT,
		duration   INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_breaks_entry ON breaks(entry_id);

	CREATE TABLE IF NOT EXISTS tasks (
		id                    INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id               TEXT NOT NULL DEFAULT 'local',
		description           TEXT NOT NULL,
		enhanced_description  TEXT NOT NULL DEFAULT '',
		category              TEXT NOT NULL DEFAULT 'Development',
		ticket_number         TEXT NOT NULL DEFAULT '',
		status                TEXT NOT NULL DEFAULT 'todo',
		completion_percentage INTEGER NOT NULL DEFAULT 0,
		priority              TEXT NOT NULL DEFAULT 'medium',
		blocker_reason        TEXT NOT NULL DEFAULT '',
		time_entry_id         INTEGER REFERENCES time_entries(id),
		planned_for           TEXT NOT NULL,
		completed_on          TEXT,
		challenges            TEXT NOT NULL DEFAULT '',
		created_at            TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at            TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		deleted_at            TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_planned ON tasks(user_id, planned_for);
	CREATE INDEX IF NOT EXISTS idx_tasks_status  ON tasks(user_id, status);

	CREATE TABLE IF NOT EXISTS invoices (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id         TEXT NOT NULL DEFAULT 'local',
		invoice_number  TEXT NOT NULL,
		period_start    TEXT NOT NULL,
		period_end      TEXT NOT NULL,
		invoice_date    TEXT NOT NULL,
		total_hours     REAL NOT NULL DEFAULT 0,
		payout_hours    REAL NOT NULL DEFAULT 0,
		share_hours     REAL NOT NULL DEFAULT 0,
		hourly_rate     REAL NOT NULL DEFAULT 0,
		payout_amount   REAL NOT NULL DEFAULT 0,
		share_amount    REAL NOT NULL DEFAULT 0,
		total_amount    REAL NOT NULL DEFAULT 0,
		allocation_mode TEXT NOT NULL DEFAULT 'standard',
		status          TEXT NOT NULL DEFAULT 'draft',
		created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('hourly_rate',      '406.25'),
		('week_start',       'sunday'),
		('company_name',     ''),
		('company_address',  ''),
		('company_abn',      ''),
		('personal_name',    ''),
		('personal_address', ''),
		('bank_name',        ''),
		('bank_bsb',         ''),
		('bank_account',     '');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/worklog/worklog.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "worklog", "worklog.db"), nil
}
