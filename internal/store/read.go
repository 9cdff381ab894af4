package store

import (
	"context"
	"database/sql"
	"fmt"
)

const evaluationColumns = `id, session, seq, op, operands, rendered, structure, approx, error_code, error_message`

// ReadSession returns the evaluations of one session in seq order.
// Returns an empty slice (not nil) if the session has no records.
func (s *Store) ReadSession(ctx context.Context, session string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+evaluationColumns+`
		FROM evaluations
		WHERE session = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	return collect(rows)
}

// ReadEvaluations returns up to limit records across all sessions, ordered by
// session then seq. A limit of zero or less returns everything.
func (s *Store) ReadEvaluations(ctx context.Context, limit int) ([]Evaluation, error) {
	query := `
		SELECT ` + evaluationColumns + `
		FROM evaluations
		ORDER BY session COLLATE BINARY ASC, seq ASC, id COLLATE BINARY ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	return collect(rows)
}

// ReadFailures returns the records with the given error code across all
// sessions. An empty code matches every failure.
func (s *Store) ReadFailures(ctx context.Context, code string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+evaluationColumns+`
		FROM evaluations
		WHERE error_code != '' AND (? = '' OR error_code = ?)
		ORDER BY session COLLATE BINARY ASC, seq ASC, id COLLATE BINARY ASC
	`, code, code)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	return collect(rows)
}

// SessionSummary describes one session in the journal.
type SessionSummary struct {
	Token    string
	Label    string
	Count    int
	Failures int
	LastSeq  int64
}

// ReadSessions lists registered sessions ordered by token.
func (s *Store) ReadSessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.token, s.label,
		       COUNT(e.id),
		       COALESCE(SUM(CASE WHEN e.error_code != '' THEN 1 ELSE 0 END), 0),
		       COALESCE(MAX(e.seq), 0)
		FROM sessions s
		LEFT JOIN evaluations e ON e.session = s.token
		GROUP BY s.token, s.label
		ORDER BY s.token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	summaries := []SessionSummary{}
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(&sum.Token, &sum.Label, &sum.Count, &sum.Failures, &sum.LastSeq); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return summaries, nil
}

// LastSeq returns the highest seq recorded for session, or 0.
// Used to resume a session's clock.
func (s *Store) LastSeq(ctx context.Context, session string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM evaluations WHERE session = ?
	`, session).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	return seq, nil
}

func collect(rows *sql.Rows) ([]Evaluation, error) {
	defer rows.Close()

	evaluations := []Evaluation{}
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return evaluations, nil
}

func scanEvaluation(rows *sql.Rows) (Evaluation, error) {
	var (
		ev        Evaluation
		operands  string
		structure string
	)
	err := rows.Scan(
		&ev.ID,
		&ev.Session,
		&ev.Seq,
		&ev.Op,
		&operands,
		&ev.Rendered,
		&structure,
		&ev.Approx,
		&ev.ErrorCode,
		&ev.ErrorMessage,
	)
	if err != nil {
		return Evaluation{}, fmt.Errorf("scan evaluation: %w", err)
	}

	if ev.Operands, err = unmarshalOperands(operands); err != nil {
		return Evaluation{}, fmt.Errorf("evaluation %s: %w", ev.ID, err)
	}
	if ev.Structure, err = unmarshalStructure(structure); err != nil {
		return Evaluation{}, fmt.Errorf("evaluation %s: %w", ev.ID, err)
	}
	return ev, nil
}
