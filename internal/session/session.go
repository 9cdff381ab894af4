// Package session sequences evaluations and records them in a journal.
//
// A Session owns a token, a logical clock and an Evaluator. Every call to
// Eval stamps the request with the next seq, evaluates it and, when a journal
// is attached, appends the outcome under a content-addressed ID.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/ir"
	"github.com/roach88/numtower/internal/store"
)

// Journal receives evaluation records. Implemented by *store.Store.
type Journal interface {
	WriteSession(ctx context.Context, token, label string) error
	WriteEvaluation(ctx context.Context, ev store.Evaluation) error
}

// Entry is the outcome of one Eval call.
type Entry struct {
	ID     string
	Seq    int64
	Result calc.Result
}

// Session is a sequence of evaluations sharing one token.
//
// Eval may be called from several goroutines; seq values stay unique but the
// journal order is the order in which seqs were taken.
type Session struct {
	token     string
	clock     Sequencer
	evaluator *calc.Evaluator
	journal   Journal
	logger    *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithJournal attaches a journal. Without one, evaluations are not recorded.
func WithJournal(j Journal) Option {
	return func(s *Session) {
		s.journal = j
	}
}

// WithClock replaces the default clock, e.g. to resume from a journal's
// last seq or to use a deterministic test clock.
func WithClock(c Sequencer) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New starts a session with a token from gen.
func New(gen TokenGenerator, evaluator *calc.Evaluator, opts ...Option) *Session {
	s := &Session{
		token:     gen.Generate(),
		clock:     NewClock(),
		evaluator: evaluator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the session token.
func (s *Session) Token() string { return s.token }

// Register records the session in the journal under label. A no-op without
// a journal.
func (s *Session) Register(ctx context.Context, label string) error {
	if s.journal == nil {
		return nil
	}
	if err := s.journal.WriteSession(ctx, s.token, label); err != nil {
		return fmt.Errorf("register session %s: %w", s.token, err)
	}
	return nil
}

// Eval evaluates req under the next seq.
//
// Arithmetic failures are carried in Entry.Result.Err. The returned error is
// reserved for journal and ID failures; when it is non-nil the entry is still
// populated with the evaluation outcome.
func (s *Session) Eval(ctx context.Context, req calc.Request) (Entry, error) {
	seq := s.clock.Next()
	res := s.evaluator.Evaluate(ctx, req)

	id, err := ir.EvaluationID(s.token, string(req.Op), req.Operands, seq)
	if err != nil {
		return Entry{Seq: seq, Result: res}, fmt.Errorf("eval seq %d: %w", seq, err)
	}
	entry := Entry{ID: id, Seq: seq, Result: res}

	s.logger.Debug("session eval",
		"session", s.token,
		"seq", seq,
		"op", req.Op,
		"ok", res.OK())

	if s.journal == nil {
		return entry, nil
	}
	if err := s.journal.WriteEvaluation(ctx, Record(s.token, entry)); err != nil {
		return entry, fmt.Errorf("eval seq %d: %w", seq, err)
	}
	return entry, nil
}

// Record converts an entry to its journal form.
func Record(token string, e Entry) store.Evaluation {
	ev := store.Evaluation{
		ID:       e.ID,
		Session:  token,
		Seq:      e.Seq,
		Op:       string(e.Result.Request.Op),
		Operands: e.Result.Request.Operands,
	}
	if e.Result.Err != nil {
		ev.ErrorCode = string(e.Result.ErrorCode())
		if ev.ErrorCode == "" {
			ev.ErrorCode = "INTERNAL"
		}
		ev.ErrorMessage = e.Result.Err.Error()
		return ev
	}
	ev.Rendered = e.Result.Rendered
	ev.Structure = e.Result.Structure
	ev.Approx = e.Result.Approx
	return ev
}
