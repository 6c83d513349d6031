package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/acb"
	"github.com/etnz/acb/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	currency string
	rate     string
	year     int
	events   bool
	holdings bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "adjusted cost base and capital gains report" }
func (*reportCmd) Usage() string {
	return `acbc report [-currency <code>] [-rate <kind>] [-year <year>] [-events] [-holdings] <file.csv>...

  Processes the transactions of broker exports and reports the capital gains
  per tax year. The format of each file is picked from its name prefix
  (cibc, mssb).
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Reporting currency, overrides the configuration.")
	f.StringVar(&c.rate, "rate", "", "Exchange rate kind used for every transaction, overrides the configuration.")
	f.IntVar(&c.year, "year", 0, "Restrict the report to a tax year.")
	f.BoolVar(&c.events, "events", false, "List every capital gain event.")
	f.BoolVar(&c.holdings, "holdings", false, "List the remaining holdings.")
	f.BoolVar(&raw, "raw", false, "Print raw markdown.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one transaction file is required")
		return subcommands.ExitUsageError
	}
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.currency != "" {
		cfg.Currency = c.currency
	}
	if c.rate != "" {
		kind, err := acb.ParseRateKind(c.rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing rate kind: %v\n", err)
			return subcommands.ExitUsageError
		}
		cfg.Policy = acb.UniformRate(kind)
	}

	res, err := run(ctx, cfg, f.Args()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReportMarkdown(res, renderer.ReportOptions{
		Year:     c.year,
		Events:   c.events,
		Holdings: c.holdings,
	}))
	return subcommands.ExitSuccess
}

// run processes the files with the configuration.
func run(ctx context.Context, cfg Config, files ...string) (*acb.Result, error) {
	events, err := loadEvents(cfg, files...)
	if err != nil {
		return nil, err
	}
	converter, err := newConverter(cfg)
	if err != nil {
		return nil, err
	}
	p, err := acb.NewProcessor(cfg.Currency, converter, cfg.Policy, acb.WithWashDays(cfg.WashDays))
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, events)
}
