package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/temporal/internal/engine"
	"github.com/roach88/temporal/internal/ir"
)

// AtOptions holds flags for the at command.
type AtOptions struct {
	*RootOptions
	TimeZone string
	Calendar string
}

// NewAtCommand creates the at command.
func NewAtCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AtOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "at <instant>",
		Short: "Year-month of an instant in a time zone",
		Long: `Resolve the year-month of an exact instant on the wall clock of a time zone.

The time zone is UTC, a fixed offset such as +05:30, or an IANA name.
It defaults to the configured time zone.

Examples:
  ymcalc at 2019-06-30T23:30:00Z --time-zone Asia/Tokyo
  ymcalc at 2019-07-01T00:30:00+00:00 --time-zone=-05:00`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAt(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.TimeZone, "time-zone", "", "time zone identifier")
	cmd.Flags().StringVar(&opts.Calendar, "calendar", "", "calendar of the result")

	return cmd
}

func runAt(opts *AtOptions, cmd *cobra.Command, instant string) error {
	input := ir.IRObject{
		"instant":  ir.IRString(instant),
		"timeZone": ir.IRString(flagOr(cmd, "time-zone", opts.TimeZone, opts.Config.TimeZone)),
		"calendar": ir.IRString(flagOr(cmd, "calendar", opts.Calendar, opts.Config.Calendar)),
	}
	return runOperation(opts.RootOptions, cmd, engine.OpAt, input)
}
