package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite connection and hands out repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them in force.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns the LLM event log backed by this store.
func (s *Store) EventRepo() *EventLog {
	return &EventLog{db: s.db, seq: s.seq}
}

// AssessmentRepo returns the assessment history backed by this store.
func (s *Store) AssessmentRepo() *Assessments {
	return &Assessments{db: s.db, seq: s.seq}
}

// Reset deletes every stored row and restarts the sequence.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM advice_records`,
		`DELETE FROM assessments`,
		`DELETE FROM llm_request_events`,
		`UPDATE global_sequence SET next_val = 1 WHERE id = 1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return tx.Commit()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		timestamp     INTEGER NOT NULL,
		provider      TEXT NOT NULL DEFAULT '',
		model         TEXT NOT NULL DEFAULT '',
		purpose       TEXT NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL DEFAULT 0,
		streamed      INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_events_sequence ON llm_request_events(sequence)`,
	`CREATE TABLE IF NOT EXISTS assessments (
		id           TEXT PRIMARY KEY,
		sequence     INTEGER NOT NULL,
		timestamp    INTEGER NOT NULL,
		name         TEXT NOT NULL DEFAULT '',
		company      TEXT NOT NULL DEFAULT '',
		age          INTEGER,
		sector       TEXT NOT NULL DEFAULT '',
		experience   TEXT NOT NULL DEFAULT '',
		overall      REAL NOT NULL,
		level        TEXT NOT NULL,
		strong_count INTEGER NOT NULL DEFAULT 0,
		scores       TEXT NOT NULL,
		answers      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assessments_sequence ON assessments(sequence)`,
	`CREATE TABLE IF NOT EXISTS advice_records (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		timestamp     INTEGER NOT NULL,
		assessment_id TEXT NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
		kind          TEXT NOT NULL,
		model         TEXT NOT NULL DEFAULT '',
		content       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_advice_assessment ON advice_records(assessment_id)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. FOUNDERFIT_DB environment variable
// 2. $XDG_DATA_HOME/founderfit/founderfit.db
// 3. ~/.local/share/founderfit/founderfit.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FOUNDERFIT_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "founderfit", "founderfit.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
