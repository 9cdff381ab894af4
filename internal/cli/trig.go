package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/calc"
)

var trigFuncs = []string{string(calc.OpSin), string(calc.OpCos), string(calc.OpTan), string(calc.OpPi), string(calc.OpTau)}

// NewTrigCommand creates the trig command.
func NewTrigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trig <sin|cos|tan> <x> | trig <pi|tau>",
		Short: "Truncated Taylor series and circle constants",
		Long: `Approximate sin, cos or tan of a non-negative fraction.

The argument is reduced modulo 2*pi with pi = 355/113 and the first four
terms of the Taylor series are summed exactly. Results are fractions; use
--verbose to also see a decimal approximation.

Examples:
  tower trig sin 1
  tower trig cos 1/2
  tower trig pi`,
		ValidArgs:     trigFuncs,
		Args:          trigArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := calc.Request{Op: calc.Op(args[0]), Operands: args[1:]}
			return runEval(cmd.Context(), rootOpts, cmd, "trig", req)
		},
	}
	return cmd
}

func trigArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
		return err
	}
	if err := cobra.OnlyValidArgs(cmd, args[:1]); err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown function %q: must be one of %v", args[0], trigFuncs))
	}
	want, _ := calc.Arity(calc.Op(args[0]))
	if len(args)-1 != want {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s takes %d argument(s), got %d", args[0], want, len(args)-1))
	}
	return nil
}
