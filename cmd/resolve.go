package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type resolveCmd struct{}

func (*resolveCmd) Name() string     { return "resolve" }
func (*resolveCmd) Synopsis() string { return "resolve a ticker symbol or company name" }
func (*resolveCmd) Usage() string {
	return `fkg resolve <query>

  Checks whether the query is a known ticker symbol or a known company name
  and prints the canonical (name, ticker) pair. The ticker check runs first,
  so a query that could be both resolves as a ticker.
`
}

func (c *resolveCmd) SetFlags(f *flag.FlagSet) {}

func (c *resolveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a query is required.")
		return subcommands.ExitUsageError
	}
	query := strings.Join(f.Args(), " ")

	resolver, err := NewResolver()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Println(resolver.Resolve(query).Message())
	return subcommands.ExitSuccess
}
