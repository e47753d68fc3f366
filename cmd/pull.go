package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finkg/financekg"
	"github.com/finkg/financekg/marketdata"
	"github.com/google/subcommands"
)

type pullCmd struct {
	exchange string
	merge    bool
}

func (*pullCmd) Name() string     { return "pull" }
func (*pullCmd) Synopsis() string { return "pull the company dataset from an exchange symbol list" }
func (*pullCmd) Usage() string {
	return `fkg pull [-exchange <code>] [-merge]

  Downloads the symbol list of an exchange and writes it to the dataset
  file as Name,TICKER lines. With -merge the downloaded entries are
  appended to the existing dataset instead of replacing it; later entries
  win on duplicate names.

  Requires the ` + eodhdAPIKeyEnv + ` environment variable to be set or passed as a flag.
`
}

func (c *pullCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.exchange, "exchange", "US", "Exchange code to pull the symbol list from")
	f.BoolVar(&c.merge, "merge", false, "Merge into the existing dataset instead of replacing it")
}

func (c *pullCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key := apiKey()
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: market data API key is not set. Use -api-key flag or %s environment variable\n", eodhdAPIKeyEnv)
		return subcommands.ExitFailure
	}

	pulled, err := marketdata.New(key).ExchangeSymbols(ctx, c.exchange)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pulling symbols for exchange %q: %v\n", c.exchange, err)
		return subcommands.ExitFailure
	}
	if len(pulled) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: exchange %q returned no symbols, dataset left untouched.\n", c.exchange)
		return subcommands.ExitSuccess
	}

	entities := pulled
	if c.merge {
		existing, err := DecodeIndex()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		entities = append(existing.Entities(), pulled...)
	}

	index := financekg.NewIndex(entities)
	if err := EncodeIndex(index); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully wrote %d companies to %s\n", index.Len(), *datasetFile)
	return subcommands.ExitSuccess
}
