package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/complexrat"
	"github.com/roach88/numtower/internal/ir"
	"github.com/roach88/numtower/internal/store"
	"github.com/roach88/numtower/internal/testutil"
)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	evaluator := calc.New(testutil.DiscardLogger())
	opts = append([]Option{WithLogger(testutil.DiscardLogger())}, opts...)
	return New(testutil.NewFixedTokenGenerator("session-test"), evaluator, opts...)
}

func openJournal(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEvalWithoutJournal(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	e1, err := s.Eval(ctx, calc.Request{Op: calc.OpMul, Operands: []string{"7-4i", "3+2i"}})
	require.NoError(t, err)
	e2, err := s.Eval(ctx, calc.Request{Op: calc.OpDiv, Operands: []string{"7-4i", "3+2i"}})
	require.NoError(t, err)

	assert.Equal(t, "session-test", s.Token())
	assert.Equal(t, int64(1), e1.Seq)
	assert.Equal(t, int64(2), e2.Seq)
	assert.Equal(t, "29 + 2i", e1.Result.Rendered)
	assert.Equal(t, "1 - 2i", e2.Result.Rendered)
	assert.Equal(t, ir.MustEvaluationID("session-test", "mul", []string{"7-4i", "3+2i"}, 1), e1.ID)
	assert.NoError(t, s.Register(ctx, "ignored"))
}

func TestEvalRecordsToJournal(t *testing.T) {
	journal := openJournal(t)
	s := newTestSession(t, WithJournal(journal), WithClock(testutil.NewDeterministicClock()))
	ctx := context.Background()
	require.NoError(t, s.Register(ctx, "unit"))

	_, err := s.Eval(ctx, calc.Request{Op: calc.OpMul, Operands: []string{"7-4i", "3+2i"}})
	require.NoError(t, err)
	entry, err := s.Eval(ctx, calc.Request{Op: calc.OpDiv, Operands: []string{"7-4i", "0"}})
	require.NoError(t, err, "arithmetic failures are recorded, not returned")
	assert.Equal(t, "DIVISION_BY_ZERO", string(entry.Result.ErrorCode()))

	evs, err := journal.ReadSession(ctx, "session-test")
	require.NoError(t, err)
	require.Len(t, evs, 2)

	assert.Equal(t, "29 + 2i", evs[0].Rendered)
	assert.Equal(t, ir.EncodeComplex(complexrat.FromInts(29, 2)), evs[0].Structure)
	assert.True(t, evs[1].Failed())
	assert.Equal(t, "DIVISION_BY_ZERO", evs[1].ErrorCode)
	assert.Contains(t, evs[1].ErrorMessage, "DIVISION_BY_ZERO")
}

func TestEvalResumesClock(t *testing.T) {
	journal := openJournal(t)
	ctx := context.Background()

	first := newTestSession(t, WithJournal(journal))
	require.NoError(t, first.Register(ctx, "first"))
	for i := 0; i < 3; i++ {
		_, err := first.Eval(ctx, calc.Request{Op: calc.OpPi})
		require.NoError(t, err)
	}

	last, err := journal.LastSeq(ctx, "session-test")
	require.NoError(t, err)
	resumed := newTestSession(t, WithJournal(journal), WithClock(NewClockAt(last)))
	entry, err := resumed.Eval(ctx, calc.Request{Op: calc.OpTau})
	require.NoError(t, err)
	assert.Equal(t, int64(4), entry.Seq)
}

type failingJournal struct{}

func (failingJournal) WriteSession(context.Context, string, string) error { return nil }
func (failingJournal) WriteEvaluation(context.Context, store.Evaluation) error {
	return errors.New("disk full")
}

func TestEvalJournalFailure(t *testing.T) {
	s := newTestSession(t, WithJournal(failingJournal{}))

	entry, err := s.Eval(context.Background(), calc.Request{Op: calc.OpPi})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, "355/113", entry.Result.Rendered, "outcome is returned even when recording fails")
}

func TestRecord(t *testing.T) {
	s := newTestSession(t)
	entry, err := s.Eval(context.Background(), calc.Request{Op: calc.OpSin, Operands: []string{"-1"}})
	require.NoError(t, err)

	rec := Record(s.Token(), entry)
	assert.Equal(t, "sin", rec.Op)
	assert.Equal(t, []string{"-1"}, rec.Operands)
	assert.Equal(t, "NEGATIVE_OPERAND", rec.ErrorCode)
	assert.Empty(t, rec.Rendered)
	assert.Nil(t, rec.Structure)

	entry.Result.Err = context.Canceled
	assert.Equal(t, "INTERNAL", Record(s.Token(), entry).ErrorCode)
}
