package store

import (
	"context"
	"fmt"
)

// WriteSession registers a session token. Registering an existing token is a
// no-op and keeps its original label.
func (s *Store) WriteSession(ctx context.Context, token, label string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, label)
		VALUES (?, ?)
		ON CONFLICT(token) DO NOTHING
	`, token, label)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// WriteEvaluation appends an evaluation record.
// Uses ON CONFLICT(id) DO NOTHING so replaying the same evaluation is
// idempotent. The session must have been registered with WriteSession.
func (s *Store) WriteEvaluation(ctx context.Context, ev Evaluation) error {
	operands, err := marshalOperands(ev.Operands)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}
	structure, err := marshalStructure(ev.Structure)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations
		(id, session, seq, op, operands, rendered, structure, approx, error_code, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		ev.ID,
		ev.Session,
		ev.Seq,
		ev.Op,
		operands,
		ev.Rendered,
		structure,
		ev.Approx,
		ev.ErrorCode,
		ev.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}
	return nil
}
