package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/temporal/internal/engine"
	"github.com/roach88/temporal/internal/ir"
)

// DifferenceOptions holds flags for the until and since commands.
type DifferenceOptions struct {
	*RootOptions
	LargestUnit       string
	SmallestUnit      string
	RoundingMode      string
	RoundingIncrement int64
}

// NewUntilCommand creates the until command.
func NewUntilCommand(rootOpts *RootOptions) *cobra.Command {
	return newDifferenceCommand(rootOpts, engine.OpUntil, "Duration from a year-month to another", `Compute the duration from a year-month to another.

Units are years and months. With --smallest-unit year the result is
rounded relative to the first year-month.

Examples:
  ymcalc until 2019-01 2020-06
  ymcalc until 2019-01 2020-08 --smallest-unit year --rounding-mode halfExpand
  ymcalc until 2019-01 2020-06 --largest-unit month`)
}

// NewSinceCommand creates the since command.
func NewSinceCommand(rootOpts *RootOptions) *cobra.Command {
	return newDifferenceCommand(rootOpts, engine.OpSince, "Duration to a year-month from another", `Compute the duration to a year-month from another.

The result is the negation of until with the rounding mode negated.

Examples:
  ymcalc since 2020-06 2019-01
  ymcalc since 2019-01 2020-08 --smallest-unit year --rounding-mode halfExpand`)
}

func newDifferenceCommand(rootOpts *RootOptions, op engine.Operation, short, long string) *cobra.Command {
	opts := &DifferenceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           string(op) + " <year-month> <other>",
		Short:         short,
		Long:          long,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDifference(opts, cmd, op, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.LargestUnit, "largest-unit", "", "largest unit of the result (auto|year|month)")
	cmd.Flags().StringVar(&opts.SmallestUnit, "smallest-unit", "", "smallest unit of the result (year|month)")
	cmd.Flags().StringVar(&opts.RoundingMode, "rounding-mode", "", "rounding mode (trunc, floor, ceil, expand, halfExpand, ...)")
	cmd.Flags().Int64Var(&opts.RoundingIncrement, "rounding-increment", 1, "rounding increment of the smallest unit")

	return cmd
}

func runDifference(opts *DifferenceOptions, cmd *cobra.Command, op engine.Operation, value, other string) error {
	ym, err := parseOperand(value)
	if err != nil {
		return err
	}
	otherValue, err := parseOperand(other)
	if err != nil {
		return err
	}

	options := ir.IRObject{
		"roundingMode": ir.IRString(flagOr(cmd, "rounding-mode", opts.RoundingMode, opts.Config.RoundingMode)),
	}
	if opts.LargestUnit != "" {
		options["largestUnit"] = ir.IRString(opts.LargestUnit)
	}
	if opts.SmallestUnit != "" {
		options["smallestUnit"] = ir.IRString(opts.SmallestUnit)
	}
	if cmd.Flags().Changed("rounding-increment") {
		options["roundingIncrement"] = ir.IRInt(opts.RoundingIncrement)
	}

	input := ir.IRObject{
		"value":   ym,
		"other":   otherValue,
		"options": options,
	}
	return runOperation(opts.RootOptions, cmd, op, input)
}
