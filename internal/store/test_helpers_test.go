package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/numtower/internal/ir"
)

// createTestStore opens a fresh journal in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession registers token in s.
func createTestSession(t *testing.T, s *Store, token string) {
	t.Helper()
	if err := s.WriteSession(context.Background(), token, "test"); err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}
}

// createTestEvaluation builds a successful record with a content-addressed ID.
func createTestEvaluation(session string, seq int64, op string, operands []string, rendered string) Evaluation {
	return Evaluation{
		ID:        ir.MustEvaluationID(session, op, operands, seq),
		Session:   session,
		Seq:       seq,
		Op:        op,
		Operands:  operands,
		Rendered:  rendered,
		Structure: ir.Object{"tag": ir.String("Fraction")},
		Approx:    rendered,
	}
}

// createTestFailure builds a failed record.
func createTestFailure(session string, seq int64, op string, operands []string, code string) Evaluation {
	return Evaluation{
		ID:           ir.MustEvaluationID(session, op, operands, seq),
		Session:      session,
		Seq:          seq,
		Op:           op,
		Operands:     operands,
		ErrorCode:    code,
		ErrorMessage: "failed",
	}
}
