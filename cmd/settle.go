package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/acb/date"
	"github.com/google/subcommands"
)

type settleCmd struct {
	days int
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "compute the settlement date of a trade" }
func (*settleCmd) Usage() string {
	return `acbc settle [-days <n>] <date>

  Prints the settlement date of a trade: the trade date plus a number of
  business days. Weekends are skipped, bank holidays are not.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", date.SettlementDays, "Number of business days to settle.")
}

func (c *settleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "a trade date is required")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	fmt.Println(on.AddBusinessDays(c.days))
	return subcommands.ExitSuccess
}
