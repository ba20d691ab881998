package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/temporal/internal/config"
	"github.com/roach88/temporal/internal/trace"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string
	Trace      bool

	// Config is loaded from ConfigPath before any subcommand runs.
	Config config.Config

	// IDs allows overriding the session id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs trace.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the ymcalc CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ymcalc",
		Short: "ymcalc - calendar-aware year-month arithmetic",
		Long: `Evaluate year-month operations through a calendar methods record.

Every operation can be recorded as a trace session: the calendar methods
it looked up and called, in order. Sessions can be stored in SQLite,
listed, shown and replayed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			setupLogging(cmd, opts.Verbose)

			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			opts.Config = cfg
			if opts.Database == "" {
				opts.Database = cfg.Database
			}
			slog.Debug("config loaded", "path", opts.ConfigPath, "calendar", cfg.Calendar, "db", opts.Database)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a CUE config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite trace database")
	cmd.PersistentFlags().BoolVar(&opts.Trace, "trace", false, "print the calendar calls of each operation")

	// Add subcommands
	cmd.AddCommand(NewFromCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewSubtractCommand(opts))
	cmd.AddCommand(NewUntilCommand(opts))
	cmd.AddCommand(NewSinceCommand(opts))
	cmd.AddCommand(NewWithCommand(opts))
	cmd.AddCommand(NewAtCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setupLogging installs a text handler on the command's stderr.
func setupLogging(cmd *cobra.Command, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
