// Command ymcalc evaluates calendar-aware year-month operations and
// inspects their recorded calendar calls.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/temporal/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
