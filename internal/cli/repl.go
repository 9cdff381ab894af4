package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/session"
)

const replPrompt = "tower> "

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	var resume string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive evaluation loop",
		Long: `Read "<op> <operand>..." lines and print each result.

Operands must not contain spaces ("7-4i", not "7 - 4i"). Type "ops" to
list operations and "quit" or Ctrl-D to leave. On a terminal the line
editor offers history and tab completion of op names; otherwise lines are
read plainly from stdin, which makes the repl scriptable.

With --db every line is journaled under one session. --resume <token>
continues a journaled session, numbering new lines after its last seq.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(rootOpts, cmd, resume)
		},
	}
	cmd.Flags().StringVar(&resume, "resume", "", "continue a journaled session (requires --db)")
	return cmd
}

type repl struct {
	ctx     context.Context
	session *session.Session
	out     io.Writer
	verbose bool
}

func runRepl(opts *RootOptions, cmd *cobra.Command, resume string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger(cmd.ErrOrStderr())

	var (
		sess         *session.Session
		closeJournal func()
		err          error
	)
	if resume != "" {
		sess, closeJournal, err = resumeSession(ctx, opts, logger, resume)
	} else {
		sess, closeJournal, err = openSession(ctx, opts, logger, "repl")
	}
	if err != nil {
		return err
	}
	defer closeJournal()

	r := &repl{ctx: ctx, session: sess, out: cmd.OutOrStdout(), verbose: opts.Verbose}

	if f, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return r.interactive()
	}
	return r.scripted(cmd.InOrStdin())
}

// interactive runs the loop under the liner line editor.
func (r *repl) interactive() error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completeOp)

	for {
		input, err := line.Prompt(replPrompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(r.out)
			return nil
		case err != nil:
			return WrapExitError(ExitCommandError, "failed to read input", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if !r.exec(input) {
			return nil
		}
	}
}

// scripted runs the loop over plain input without prompts.
func (r *repl) scripted(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !r.exec(scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return nil
}

// exec handles one input line. Returns false when the loop should stop.
func (r *repl) exec(input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return true
	}

	switch fields[0] {
	case "quit", "exit":
		return false
	case "ops", "help":
		fmt.Fprintln(r.out, strings.Join(calc.Ops(), " "))
		return true
	}

	entry, err := r.session.Eval(r.ctx, calc.Request{Op: calc.Op(fields[0]), Operands: fields[1:]})
	if err != nil {
		fmt.Fprintf(r.out, "journal error: %v\n", err)
		return true
	}
	if entry.Result.Err != nil {
		fmt.Fprintf(r.out, "error [%s]: %v\n", entry.Result.ErrorCode(), entry.Result.Err)
		return true
	}
	writeEntry(r.out, entry, r.verbose)
	return true
}

// completeOp completes the op name at the start of the line.
func completeOp(line string) []string {
	if strings.Contains(line, " ") {
		return nil
	}
	var out []string
	for _, op := range slices.Concat(calc.Ops(), []string{"ops", "quit"}) {
		if strings.HasPrefix(op, line) {
			out = append(out, op)
		}
	}
	return out
}
