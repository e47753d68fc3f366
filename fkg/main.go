package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/finkg/financekg/cmd"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

func main() {
	// Series payloads carry prices as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
