package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/temporal/internal/engine"
	"github.com/roach88/temporal/internal/ir"
)

// ArithmeticOptions holds flags for the add and subtract commands.
type ArithmeticOptions struct {
	*RootOptions
	Overflow string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return newArithmeticCommand(rootOpts, engine.OpAdd, "Add a duration to a year-month", `Add a duration to a year-month.

The duration is an ISO 8601 string or a JSON property bag. Units below
months are balanced into days and applied to the first or last day of
the month, depending on the sign.

Examples:
  ymcalc add 2019-06 P1Y2M
  ymcalc add 2019-01 '{"months": 13}'
  ymcalc add 2019-06 P1M --trace`)
}

// NewSubtractCommand creates the subtract command.
func NewSubtractCommand(rootOpts *RootOptions) *cobra.Command {
	return newArithmeticCommand(rootOpts, engine.OpSubtract, "Subtract a duration from a year-month", `Subtract a duration from a year-month.

Examples:
  ymcalc subtract 2019-06 P1Y2M
  ymcalc subtract 2019-06 P1M --overflow reject`)
}

func newArithmeticCommand(rootOpts *RootOptions, op engine.Operation, short, long string) *cobra.Command {
	opts := &ArithmeticOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           string(op) + " <year-month> <duration>",
		Short:         short,
		Long:          long,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArithmetic(opts, cmd, op, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.Overflow, "overflow", "", "overflow handling (constrain|reject)")

	return cmd
}

func runArithmetic(opts *ArithmeticOptions, cmd *cobra.Command, op engine.Operation, value, duration string) error {
	ym, err := parseOperand(value)
	if err != nil {
		return err
	}
	dur, err := parseOperand(duration)
	if err != nil {
		return err
	}

	input := ir.IRObject{
		"value":    ym,
		"duration": dur,
		"options": ir.IRObject{
			"overflow": ir.IRString(flagOr(cmd, "overflow", opts.Overflow, opts.Config.Overflow)),
		},
	}
	return runOperation(opts.RootOptions, cmd, op, input)
}
