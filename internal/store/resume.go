package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a token was never registered.
var ErrSessionNotFound = errors.New("session not found")

// SessionState is everything needed to continue a journaled session.
type SessionState struct {
	Token       string
	Label       string
	Evaluations []Evaluation // seq order
	LastSeq     int64
	Failures    int
}

// GetSessionState reads the label and evaluations of a registered session.
// Returns ErrSessionNotFound (wrapped) for an unknown token.
func (s *Store) GetSessionState(ctx context.Context, token string) (SessionState, error) {
	state := SessionState{Token: token}

	err := s.db.QueryRowContext(ctx, `
		SELECT label FROM sessions WHERE token = ?
	`, token).Scan(&state.Label)
	if errors.Is(err, sql.ErrNoRows) {
		return state, fmt.Errorf("get session state %s: %w", token, ErrSessionNotFound)
	}
	if err != nil {
		return state, fmt.Errorf("get session state: %w", err)
	}

	evs, err := s.ReadSession(ctx, token)
	if err != nil {
		return state, fmt.Errorf("get session state: %w", err)
	}
	state.Evaluations = evs

	for _, ev := range evs {
		if ev.Seq > state.LastSeq {
			state.LastSeq = ev.Seq
		}
		if ev.Failed() {
			state.Failures++
		}
	}
	return state, nil
}
