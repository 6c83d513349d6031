// Package cmd implements the CLI application computing adjusted cost bases and
// capital gains.
package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&rateCmd{}, "rates")
	c.Register(&settleCmd{}, "rates")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "acb.ini", "Path to the configuration file, a missing file means defaults.")

// Completion returns the shell completion of the subcommands.
func Completion() *complete.Command {
	kinds := predict.Set(rateKindNames())
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.ini"),
		},
		Sub: map[string]*complete.Command{
			"report": {
				Flags: map[string]complete.Predictor{
					"currency": predict.Set{"CAD", "USD"},
					"rate":     kinds,
					"year":     predict.Something,
					"events":   predict.Nothing,
					"holdings": predict.Nothing,
				},
				Args: predict.Files("*.csv"),
			},
			"rate": {
				Args: predict.Set{"USD", "CAD", "EUR", "GBP", "JPY", "CHF", "AUD"},
			},
			"settle": {
				Flags: map[string]complete.Predictor{"days": predict.Something},
			},
			"topic": {
				Args: predict.Set(topicNames()),
			},
			"help":     {},
			"commands": {},
			"flags":    {},
		},
	}
}
