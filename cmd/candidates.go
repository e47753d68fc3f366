package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finkg/financekg/renderer"
	"github.com/google/subcommands"
)

type candidatesCmd struct{}

func (*candidatesCmd) Name() string     { return "candidates" }
func (*candidatesCmd) Synopsis() string { return "list candidate company names for a query" }
func (*candidatesCmd) Usage() string {
	return `fkg candidates <query>

  Lists the canonical company names matching a descriptive query, most
  relevant first. With an API key set the remote search ranks results;
  otherwise the local index is scanned.
`
}

func (c *candidatesCmd) SetFlags(f *flag.FlagSet) {}

func (c *candidatesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	names, err := resolver.CandidateNames(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching candidates: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(names) == 0 {
		fmt.Printf("No candidates found for %q.\n", query)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.CandidatesMarkdown(query, names))
	return subcommands.ExitSuccess
}
