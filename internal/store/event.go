package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter hands out one monotonic sequence shared by every table,
// so LLM events, assessments and advice can be ordered against each other.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.nextIn(ctx, sc.db)
}

// nextIn draws the next number through q. Inside a transaction the
// transaction's connection already serializes the update, and taking the
// mutex there could wait on a caller that is itself waiting for that
// connection.
func (sc *sequenceCounter) nextIn(ctx context.Context, q execer) (int64, error) {
	var seq int64
	err := q.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// where renders the filter part of opts against the sequence and timestamp
// columns. Timestamps are stored as Unix milliseconds.
func (o QueryOpts) where() (string, []any) {
	var clauses []string
	var args []any
	if o.After > 0 {
		clauses = append(clauses, "sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		clauses = append(clauses, "sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, o.From.UnixMilli())
	}
	if !o.To.IsZero() {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, o.To.UnixMilli())
	}
	if len(clauses) == 0 {
		return "", nil
	}
	q := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		q += " AND " + c
	}
	return q, args
}

func (o QueryOpts) limit() string {
	if o.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", o.Limit)
}
