package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Session  string
	Failures bool
	Code     string
	Limit    int
}

// HistoryEntry is one journal record in JSON output.
type HistoryEntry struct {
	ID        string   `json:"id"`
	Session   string   `json:"session"`
	Seq       int64    `json:"seq"`
	Op        string   `json:"op"`
	Operands  []string `json:"operands"`
	Rendered  string   `json:"rendered,omitempty"`
	Approx    string   `json:"approx,omitempty"`
	ErrorCode string   `json:"error_code,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// HistorySession is one session summary in JSON output.
type HistorySession struct {
	Token    string `json:"token"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Failures int    `json:"failures"`
	LastSeq  int64  `json:"last_seq"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled evaluations",
		Long: `List sessions and evaluations recorded with --db.

Without --session or --failures, lists every session with its
evaluation and failure counts.

Examples:
  tower history --db ./tower.db
  tower history --db ./tower.db --session 0190c6d2-...
  tower history --db ./tower.db --failures --code DIVISION_BY_ZERO
  tower history --db ./tower.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Session, "session", "", "list the evaluations of one session")
	cmd.Flags().BoolVar(&opts.Failures, "failures", false, "list failed evaluations only")
	cmd.Flags().StringVar(&opts.Code, "code", "", "with --failures, restrict to one error code")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of evaluations (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := opts.Formatter(cmd)

	if opts.Database == "" {
		_ = formatter.Error(ErrCodeNotFound, "--db is required")
		return NewExitError(ExitCommandError, "--db is required")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error())
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if opts.Session == "" && !opts.Failures {
		return listSessions(ctx, st, opts, formatter)
	}

	var evs []store.Evaluation
	if opts.Failures {
		evs, err = st.ReadFailures(ctx, opts.Code)
		if err == nil && opts.Session != "" {
			evs = filterSession(evs, opts.Session)
		}
	} else {
		evs, err = st.ReadSession(ctx, opts.Session)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error())
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	if opts.Limit > 0 && len(evs) > opts.Limit {
		evs = evs[:opts.Limit]
	}

	if opts.Format == "json" {
		out := make([]HistoryEntry, 0, len(evs))
		for _, ev := range evs {
			out = append(out, toHistoryEntry(ev))
		}
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	if len(evs) == 0 {
		fmt.Fprintln(w, "No evaluations found.")
		return nil
	}
	for _, ev := range evs {
		writeEvaluation(w, ev)
	}
	return nil
}

func listSessions(ctx context.Context, st *store.Store, opts *HistoryOptions, formatter *OutputFormatter) error {
	sessions, err := st.ReadSessions(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error())
		return WrapExitError(ExitCommandError, "failed to read sessions", err)
	}

	if opts.Format == "json" {
		out := make([]HistorySession, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, HistorySession(s))
		}
		return formatter.Success(out)
	}

	w := formatter.Writer
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %-6s  %d evaluation(s), %d failed, last seq %d\n",
			s.Token, s.Label, s.Count, s.Failures, s.LastSeq)
	}
	return nil
}

func filterSession(evs []store.Evaluation, token string) []store.Evaluation {
	out := evs[:0]
	for _, ev := range evs {
		if ev.Session == token {
			out = append(out, ev)
		}
	}
	return out
}

func toHistoryEntry(ev store.Evaluation) HistoryEntry {
	operands := ev.Operands
	if operands == nil {
		operands = []string{}
	}
	return HistoryEntry{
		ID:        ev.ID,
		Session:   ev.Session,
		Seq:       ev.Seq,
		Op:        ev.Op,
		Operands:  operands,
		Rendered:  ev.Rendered,
		Approx:    ev.Approx,
		ErrorCode: ev.ErrorCode,
		Error:     ev.ErrorMessage,
	}
}

func writeEvaluation(w io.Writer, ev store.Evaluation) {
	call := strings.TrimSpace(ev.Op + " " + strings.Join(ev.Operands, " "))
	if ev.Failed() {
		fmt.Fprintf(w, "[%d] %s => error %s\n", ev.Seq, call, ev.ErrorCode)
		return
	}
	fmt.Fprintf(w, "[%d] %s => %s\n", ev.Seq, call, ev.Rendered)
}
