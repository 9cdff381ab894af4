package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/complexrat"
	"github.com/roach88/numtower/internal/ir"
)

// DemoValue is one demo result in JSON output.
type DemoValue struct {
	Expression string    `json:"expression"`
	Rendered   string    `json:"rendered"`
	Structure  ir.Object `json:"structure"`
}

// DemoResult is the JSON payload of the demo command.
type DemoResult struct {
	Product  DemoValue `json:"product"`
	Quotient DemoValue `json:"quotient"`
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Multiply and divide 7-4i by 3+2i",
		Long: `Build 7-4i and 3+2i from machine integers, then print their product
and quotient both rendered and in raw structural form.

In JSON mode the structural form is the tagged IR encoding.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rootOpts, cmd)
		},
	}
	return cmd
}

func runDemo(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.Formatter(cmd)

	z1 := complexrat.FromInts(7, -4)
	z2 := complexrat.FromInts(3, 2)

	product := z1.Mul(z2)
	quotient, err := z1.Div(z2)
	if err != nil {
		return formatter.Fail(err)
	}

	mulExpr := fmt.Sprintf("(%s) * (%s)", z1, z2)
	divExpr := fmt.Sprintf("(%s) / (%s)", z1, z2)

	if opts.Format == "json" {
		return formatter.Success(DemoResult{
			Product:  DemoValue{Expression: mulExpr, Rendered: product.String(), Structure: ir.EncodeComplex(product)},
			Quotient: DemoValue{Expression: divExpr, Rendered: quotient.String(), Structure: ir.EncodeComplex(quotient)},
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s = %v\n", mulExpr, product)
	fmt.Fprintf(w, "%s = %v\n", divExpr, quotient)
	fmt.Fprintf(w, "%#v\n", product)
	fmt.Fprintf(w, "%#v\n", quotient)
	return nil
}
