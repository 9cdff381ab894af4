package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/session"
	"github.com/roach88/numtower/internal/store"
)

// openSession starts a session for one command invocation. With --db the
// session is registered in the journal under label and every evaluation is
// recorded; the returned close func releases the journal.
func openSession(ctx context.Context, opts *RootOptions, logger *slog.Logger, label string) (*session.Session, func(), error) {
	evaluator := calc.New(logger)
	if opts.Database == "" {
		sess := session.New(session.UUIDv7Generator{}, evaluator, session.WithLogger(logger))
		return sess, func() {}, nil
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	sess := session.New(session.UUIDv7Generator{}, evaluator,
		session.WithJournal(st),
		session.WithLogger(logger))
	if err := sess.Register(ctx, label); err != nil {
		st.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to register session", err)
	}
	logger.Debug("journal opened", "db", opts.Database, "session", sess.Token())
	return sess, func() { st.Close() }, nil
}

// resumeSession continues a journaled session. Requires --db.
func resumeSession(ctx context.Context, opts *RootOptions, logger *slog.Logger, token string) (*session.Session, func(), error) {
	if opts.Database == "" {
		return nil, nil, NewExitError(ExitCommandError, "--resume requires --db")
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	sess, state, err := session.Resume(ctx, st, token, calc.New(logger), session.WithLogger(logger))
	if err != nil {
		st.Close()
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, nil, NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", token))
		}
		return nil, nil, WrapExitError(ExitCommandError, "failed to resume session", err)
	}
	logger.Info("session resumed",
		"session", token,
		"label", state.Label,
		"evaluations", len(state.Evaluations),
		"last_seq", state.LastSeq)
	return sess, func() { st.Close() }, nil
}
