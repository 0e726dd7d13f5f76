package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Assessments implements AssessmentRepo.
type Assessments struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ AssessmentRepo = (*Assessments)(nil)

// Save inserts rec, assigning ID, Sequence and Timestamp when unset.
func (r *Assessments) Save(ctx context.Context, rec *AssessmentRecord) error {
	return r.SaveWithAdvice(ctx, rec, nil)
}

// SaveWithAdvice inserts rec and its advice in one transaction, so a
// failure leaves neither behind. Each advice record's AssessmentID is set
// to rec.ID.
func (r *Assessments) SaveWithAdvice(ctx context.Context, rec *AssessmentRecord, advice []*AdviceRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := r.insertAssessment(ctx, tx, rec); err != nil {
		return err
	}
	for _, a := range advice {
		a.AssessmentID = rec.ID
		if err := r.insertAdvice(ctx, tx, a); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assessment: %w", err)
	}
	return nil
}

func (r *Assessments) insertAssessment(ctx context.Context, q execer, rec *AssessmentRecord) error {
	seqNum, err := r.seq.nextIn(ctx, q)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Sequence = seqNum

	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	answers := rec.Answers
	if len(answers) == 0 {
		answers = json.RawMessage("{}")
	}

	var age sql.NullInt64
	if rec.Age != nil {
		age = sql.NullInt64{Int64: int64(*rec.Age), Valid: true}
	}

	_, err = q.ExecContext(ctx, `INSERT INTO assessments
		(id, sequence, timestamp, name, company, age, sector, experience,
		 overall, level, strong_count, scores, answers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Sequence, rec.Timestamp.UnixMilli(), rec.Name, rec.Company, age,
		rec.Sector, rec.Experience, rec.Overall, rec.Level, rec.StrongCount,
		string(scores), string(answers))
	if err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	return nil
}

const assessmentColumns = `id, sequence, timestamp, name, company, age, sector, experience,
	overall, level, strong_count, scores, answers`

func scanAssessment(row interface{ Scan(...any) error }) (AssessmentRecord, error) {
	var rec AssessmentRecord
	var ts int64
	var age sql.NullInt64
	var scores, answers string
	err := row.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Name, &rec.Company, &age,
		&rec.Sector, &rec.Experience, &rec.Overall, &rec.Level, &rec.StrongCount,
		&scores, &answers)
	if err != nil {
		return rec, err
	}
	rec.Timestamp = time.UnixMilli(ts)
	if age.Valid {
		a := int(age.Int64)
		rec.Age = &a
	}
	if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
		return rec, fmt.Errorf("decode scores: %w", err)
	}
	rec.Answers = json.RawMessage(answers)
	return rec, nil
}

// Get returns the assessment with id, or nil if it does not exist.
func (r *Assessments) Get(ctx context.Context, id string) (*AssessmentRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assessmentColumns+` FROM assessments WHERE id = ?`, id)
	rec, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment %s: %w", id, err)
	}
	return &rec, nil
}

// List returns assessments newest first.
func (r *Assessments) List(ctx context.Context, opts QueryOpts) ([]AssessmentRecord, error) {
	where, args := opts.where()
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assessmentColumns+` FROM assessments`+where+` ORDER BY sequence DESC`+opts.limit(),
		args...)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Stats aggregates the stored history. An empty store yields zero values.
func (r *Assessments) Stats(ctx context.Context) (*AssessmentStats, error) {
	st := &AssessmentStats{ByLevel: map[string]int{}}

	var latest sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(overall), 0), MAX(timestamp) FROM assessments`,
	).Scan(&st.Count, &st.AverageOverall, &latest)
	if err != nil {
		return nil, fmt.Errorf("assessment totals: %w", err)
	}
	if latest.Valid {
		st.Latest = time.UnixMilli(latest.Int64)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT level, COUNT(*) FROM assessments GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("assessments by level: %w", err)
	}
	for rows.Next() {
		var level string
		var n int
		if err := rows.Scan(&level, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan level count: %w", err)
		}
		st.ByLevel[level] = n
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM advice_records`).Scan(&st.AdviceCount); err != nil {
		return nil, fmt.Errorf("advice count: %w", err)
	}
	return st, nil
}

// SaveAdvice attaches generated advice to a stored assessment.
func (r *Assessments) SaveAdvice(ctx context.Context, rec *AdviceRecord) error {
	return r.insertAdvice(ctx, r.db, rec)
}

func (r *Assessments) insertAdvice(ctx context.Context, q execer, rec *AdviceRecord) error {
	seqNum, err := r.seq.nextIn(ctx, q)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Sequence = seqNum

	res, err := q.ExecContext(ctx, `INSERT INTO advice_records
		(sequence, timestamp, assessment_id, kind, model, content)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Sequence, rec.Timestamp.UnixMilli(), rec.AssessmentID, rec.Kind, rec.Model, rec.Content)
	if err != nil {
		return fmt.Errorf("save advice: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("advice id: %w", err)
	}
	rec.ID = int(id)
	return nil
}

// ListAdvice returns the advice for one assessment in creation order.
func (r *Assessments) ListAdvice(ctx context.Context, assessmentID string) ([]AdviceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp, assessment_id, kind, model, content
		FROM advice_records WHERE assessment_id = ? ORDER BY sequence`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("list advice: %w", err)
	}
	defer rows.Close()

	var out []AdviceRecord
	for rows.Next() {
		var a AdviceRecord
		var ts int64
		if err := rows.Scan(&a.ID, &a.Sequence, &ts, &a.AssessmentID, &a.Kind, &a.Model, &a.Content); err != nil {
			return nil, fmt.Errorf("scan advice: %w", err)
		}
		a.Timestamp = time.UnixMilli(ts)
		out = append(out, a)
	}
	return out, rows.Err()
}
