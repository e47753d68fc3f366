// Package cmd implements the CLI application to resolve companies and fetch
// market data.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/finkg/financekg"
	"github.com/finkg/financekg/marketdata"
	"github.com/google/subcommands"
)

const eodhdAPIKeyEnv = "EODHD_API_TOKEN"

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&resolveCmd{}, "identity")
	c.Register(&candidatesCmd{}, "identity")
	c.Register(&tickerCmd{}, "identity")

	c.Register(&fetchCmd{}, "market data")
	c.Register(&pullCmd{}, "market data")

	c.Register(&serveCmd{}, "service")
	c.Register(&AssistCmd{}, "service")
	c.Register(&topicCmd{}, "service")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var datasetFile = flag.String("dataset", "companies.csv", "Path to the company dataset file (Name,TICKER per line)")
var apiKeyFlag = flag.String("api-key", "", "Market data API key. Takes precedence over the "+eodhdAPIKeyEnv+" environment variable.")

// apiKey retrieves the market-data API key from the command-line flag or the
// environment variable. The flag wins.
func apiKey() string {
	if *apiKeyFlag != "" {
		return *apiKeyFlag
	}
	return os.Getenv(eodhdAPIKeyEnv)
}

// DecodeIndex loads the company dataset from the app dataset file and builds
// the index. A missing file yields an empty index so identity commands still
// run before the first pull.
func DecodeIndex() (*financekg.Index, error) {
	f, err := os.Open(*datasetFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "warning, dataset %q does not exist, using an empty index instead\n", *datasetFile)
			return financekg.NewIndex(nil), nil
		}
		return nil, fmt.Errorf("could not open dataset %q: %w", *datasetFile, err)
	}
	defer f.Close()

	entities, err := financekg.DecodeEntities(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode dataset %q: %w", *datasetFile, err)
	}
	return financekg.NewIndex(entities), nil
}

// EncodeIndex writes the index back to the app dataset file.
func EncodeIndex(index *financekg.Index) error {
	f, err := os.Create(*datasetFile)
	if err != nil {
		return fmt.Errorf("could not create dataset %q: %w", *datasetFile, err)
	}
	defer f.Close()
	return financekg.EncodeEntities(f, index.Entities())
}

// NewResolver builds the resolver over the dataset. With an API key the
// candidate supplier is the remote search, otherwise the offline scan.
func NewResolver() (*financekg.Resolver, error) {
	index, err := DecodeIndex()
	if err != nil {
		return nil, err
	}
	var supplier financekg.CandidateSupplier
	if key := apiKey(); key != "" {
		supplier = marketdata.NewCandidateSearch(marketdata.New(key), index)
	} else {
		supplier = financekg.NewScanSupplier(index, 0)
	}
	return financekg.NewResolver(index, supplier), nil
}

// NewGateway builds the market-data gateway. It fails when no API key is
// configured, since every gateway call hits the external source.
func NewGateway() (*financekg.Gateway, error) {
	key := apiKey()
	if key == "" {
		return nil, fmt.Errorf("market data API key is not set. Use -api-key flag or %s environment variable", eodhdAPIKeyEnv)
	}
	return financekg.NewGateway(marketdata.New(key)), nil
}
