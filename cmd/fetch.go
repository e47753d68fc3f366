package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/finkg/financekg/renderer"
)

type fetchCmd struct {
	dividends bool
	info      bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch market data for a ticker" }
func (*fetchCmd) Usage() string {
	return `fkg fetch [-dividends] [-info] <ticker>

  Fetches one year of daily price history for a ticker and prints it as a
  table, optionally with the dividend history and the security metadata.

  Requires the ` + eodhdAPIKeyEnv + ` environment variable to be set or passed as a flag.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dividends, "dividends", false, "Also print the dividend history")
	f.BoolVar(&c.info, "info", false, "Also print the security metadata")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ticker is required.")
		return subcommands.ExitUsageError
	}
	ticker := f.Arg(0)

	gateway, err := NewGateway()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	bars, err := gateway.DailyHistory(ctx, ticker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching history for %q: %v\n", ticker, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.DailyMarkdown(ticker, bars))

	if c.dividends {
		divs, err := gateway.Dividends(ctx, ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching dividends for %q: %v\n", ticker, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.DividendsMarkdown(ticker, divs))
	}

	if c.info {
		info, err := gateway.Info(ctx, ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching info for %q: %v\n", ticker, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.InfoMarkdown(ticker, info))
	}

	return subcommands.ExitSuccess
}
