package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/acb"
	"github.com/etnz/acb/date"
	"github.com/etnz/acb/renderer"
	"github.com/google/subcommands"
)

type rateCmd struct{}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "show a historical exchange rate" }
func (*rateCmd) Usage() string {
	return `acbc rate <from> <to> <date> [kind]

  Prints the rate of one unit of <from> in <to> on a date, and the date the
  rate actually applies to when <date> is a bank holiday.
  The default kind is "daily noon".
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&raw, "raw", false, "Print raw markdown.")
}

func (c *rateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "from, to and date are required")
		return subcommands.ExitUsageError
	}
	from, to := strings.ToUpper(f.Arg(0)), strings.ToUpper(f.Arg(1))
	on, err := date.Parse(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	kind := acb.DailyNoon
	if f.NArg() > 3 {
		if kind, err = acb.ParseRateKind(strings.Join(f.Args()[3:], " ")); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	converter, err := newConverter(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rate, effective, err := converter.Rate(ctx, from, to, on, kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RateMarkdown(from, to, kind, on, effective, rate))
	return subcommands.ExitSuccess
}

// rateKindNames returns the names of all the rate kinds.
func rateKindNames() []string {
	var names []string
	for _, k := range acb.RateKinds() {
		names = append(names, k.String())
	}
	return names
}
