package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/temporal/internal/engine"
	"github.com/roach88/temporal/internal/ir"
)

// FromOptions holds flags for the from command.
type FromOptions struct {
	*RootOptions
	Overflow     string
	Calendar     string
	ShowCalendar string
}

// NewFromCommand creates the from command.
func NewFromCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FromOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "from <value>",
		Short: "Create a year-month from a string or property bag",
		Long: `Create a year-month from an ISO 8601 string or a JSON property bag.

Bags without a calendar use --calendar, or the configured calendar.

Examples:
  ymcalc from 2019-06
  ymcalc from '{"year": 2019, "month": 13}' --overflow reject
  ymcalc from 2019-06 --show-calendar always --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrom(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Overflow, "overflow", "", "overflow handling (constrain|reject)")
	cmd.Flags().StringVar(&opts.Calendar, "calendar", "", "calendar for property bags")
	cmd.Flags().StringVar(&opts.ShowCalendar, "show-calendar", "", "calendar annotation (auto|always|never|critical)")

	return cmd
}

func runFrom(opts *FromOptions, cmd *cobra.Command, arg string) error {
	value, err := parseOperand(arg)
	if err != nil {
		return err
	}
	if bag, ok := value.(ir.IRObject); ok && !bag.Has("calendar") {
		value = bag.With("calendar", ir.IRString(flagOr(cmd, "calendar", opts.Calendar, opts.Config.Calendar)))
	}

	input := ir.IRObject{
		"value": value,
		"options": ir.IRObject{
			"overflow":     ir.IRString(flagOr(cmd, "overflow", opts.Overflow, opts.Config.Overflow)),
			"calendarName": ir.IRString(flagOr(cmd, "show-calendar", opts.ShowCalendar, opts.Config.ShowCalendar)),
		},
	}
	return runOperation(opts.RootOptions, cmd, engine.OpFrom, input)
}
