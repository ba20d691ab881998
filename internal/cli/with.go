package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/temporal/internal/engine"
	"github.com/roach88/temporal/internal/ir"
)

// WithOptions holds flags for the with command.
type WithOptions struct {
	*RootOptions
	Overflow string
}

// NewWithCommand creates the with command.
func NewWithCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WithOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "with <year-month> <json-fields>",
		Short: "Replace fields of a year-month",
		Long: `Replace fields of a year-month with a partial JSON property bag.

The bag must name at least one of year, month or monthCode, and may not
carry a calendar or time zone.

Examples:
  ymcalc with 2019-06 '{"month": 12}'
  ymcalc with 2019-06 '{"month": 13}' --overflow reject`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(opts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.Overflow, "overflow", "", "overflow handling (constrain|reject)")

	return cmd
}

func runWith(opts *WithOptions, cmd *cobra.Command, value, fields string) error {
	ym, err := parseOperand(value)
	if err != nil {
		return err
	}
	partial, err := parseOperand(fields)
	if err != nil {
		return err
	}
	if _, ok := partial.(ir.IRObject); !ok {
		return NewExitError(ExitCommandError, "fields must be a JSON object")
	}

	input := ir.IRObject{
		"value":  ym,
		"fields": partial,
		"options": ir.IRObject{
			"overflow": ir.IRString(flagOr(cmd, "overflow", opts.Overflow, opts.Config.Overflow)),
		},
	}
	return runOperation(opts.RootOptions, cmd, engine.OpWith, input)
}
