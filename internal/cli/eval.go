package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/ir"
	"github.com/roach88/numtower/internal/session"
)

// EvalResult is the JSON payload of one evaluation.
type EvalResult struct {
	Session   string    `json:"session"`
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Op        string    `json:"op"`
	Operands  []string  `json:"operands"`
	Rendered  string    `json:"rendered"`
	Approx    string    `json:"approx"`
	Structure ir.Object `json:"structure"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <op> [operand...]",
		Short: "Evaluate one operation exactly",
		Long: `Evaluate one operation on fraction or complex operands.

Operands are fractions ("3", "-1/2") or complex numbers ("7-4i", "1/2+3i")
written without spaces. Binary ops on two real operands stay in the
fraction layer; any complex operand lifts both to complex.

Ops: ` + fmt.Sprint(calc.Ops()) + `

Exit codes:
  0 - Evaluated
  1 - Arithmetic failure (division by zero, parse error, ...)
  2 - Command error (database, flags)

Examples:
  tower eval mul 7-4i 3+2i
  tower eval div 1/2 1/3 --format json
  tower eval add 1 2 --db ./tower.db`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := calc.Request{Op: calc.Op(args[0]), Operands: args[1:]}
			return runEval(cmd.Context(), rootOpts, cmd, "eval", req)
		},
	}
	return cmd
}

// runEval evaluates req in a fresh session and prints the outcome.
func runEval(ctx context.Context, opts *RootOptions, cmd *cobra.Command, label string, req calc.Request) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.Formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	sess, closeJournal, err := openSession(ctx, opts, logger, label)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error())
		return err
	}
	defer closeJournal()

	entry, err := sess.Eval(ctx, req)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error())
		return WrapExitError(ExitCommandError, "failed to record evaluation", err)
	}
	if entry.Result.Err != nil {
		return formatter.Fail(entry.Result.Err)
	}

	if opts.Format == "json" {
		return formatter.Success(newEvalResult(sess.Token(), entry))
	}
	writeEntry(cmd.OutOrStdout(), entry, opts.Verbose)
	return nil
}

func newEvalResult(token string, entry session.Entry) EvalResult {
	operands := entry.Result.Request.Operands
	if operands == nil {
		operands = []string{}
	}
	return EvalResult{
		Session:   token,
		ID:        entry.ID,
		Seq:       entry.Seq,
		Op:        string(entry.Result.Request.Op),
		Operands:  operands,
		Rendered:  entry.Result.Rendered,
		Approx:    entry.Result.Approx,
		Structure: entry.Result.Structure,
	}
}

// writeEntry prints the rendered value, and with verbose also the
// approximation and raw layout.
func writeEntry(w io.Writer, entry session.Entry, verbose bool) {
	fmt.Fprintln(w, entry.Result.Rendered)
	if !verbose {
		return
	}
	fmt.Fprintf(w, "  approx: %s\n", entry.Result.Approx)
	fmt.Fprintf(w, "  raw:    %#v\n", entry.Result.Value)
}
