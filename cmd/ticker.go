package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finkg/financekg"
	"github.com/google/subcommands"
)

type tickerCmd struct{}

func (*tickerCmd) Name() string     { return "ticker" }
func (*tickerCmd) Synopsis() string { return "look up the ticker of an exact company name" }
func (*tickerCmd) Usage() string {
	return `fkg ticker <company name>

  Prints the ticker symbol for an exact canonical company name, as listed
  by 'fkg candidates'. The lookup is case sensitive.
`
}

func (c *tickerCmd) SetFlags(f *flag.FlagSet) {}

func (c *tickerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a company name is required.")
		return subcommands.ExitUsageError
	}
	name := strings.Join(f.Args(), " ")

	resolver, err := NewResolver()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	ticker, err := resolver.TickerByName(name)
	if err != nil {
		var nf *financekg.NotFoundError
		if errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "Error: %v. Use 'fkg candidates' to find the exact name.\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return subcommands.ExitFailure
	}

	fmt.Println(ticker)
	return subcommands.ExitSuccess
}
