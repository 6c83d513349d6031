// Command acbc computes adjusted cost bases and capital gains from broker
// exports.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/acb/cmd"
	"github.com/golang/glog"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.Completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	status := commander.Execute(context.Background())
	glog.Flush()
	os.Exit(int(status))
}
