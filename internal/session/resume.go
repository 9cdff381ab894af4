package session

import (
	"context"
	"fmt"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/store"
)

// Resume continues a session recorded in st. The returned session keeps the
// original token and its clock starts after the last journaled seq, so new
// evaluations extend the existing trace. Options are applied after the
// journal and clock, so WithClock can still override the latter.
func Resume(ctx context.Context, st *store.Store, token string, evaluator *calc.Evaluator, opts ...Option) (*Session, store.SessionState, error) {
	state, err := st.GetSessionState(ctx, token)
	if err != nil {
		return nil, state, fmt.Errorf("resume session: %w", err)
	}

	base := []Option{WithJournal(st), WithClock(NewClockAt(state.LastSeq))}
	s := New(NewFixedGenerator(token), evaluator, append(base, opts...)...)
	s.logger.Debug("session resumed",
		"session", token,
		"label", state.Label,
		"last_seq", state.LastSeq)
	return s, state, nil
}
