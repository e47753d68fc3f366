package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/finkg/financekg"
	"github.com/finkg/financekg/cache"
	"github.com/finkg/financekg/server"
	"github.com/go-redis/redis/v8"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr     string
	redis    string
	cacheTTL time.Duration
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the tool-call surface over HTTP" }
func (*serveCmd) Usage() string {
	return `fkg serve [-addr <addr>] [-redis <addr>] [-cache-ttl <duration>]

  Serves every tool under /tools/, the company-format reference resource
  under /resources/company-format, and POST /admin/reload to rebuild the
  index from the dataset file without restarting.

  With -redis set, market-data responses are memoized in Redis.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on")
	f.StringVar(&c.redis, "redis", "", "Redis address for response memoization (empty disables it)")
	f.DurationVar(&c.cacheTTL, "cache-ttl", cache.DefaultTTL, "TTL of memoized market-data responses")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	resolver, err := NewResolver()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	gateway, err := NewGateway()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithAccessLog(os.Stderr),
		server.WithReloader(func() (*financekg.Resolver, error) { return NewResolver() }),
	}
	if c.redis != "" {
		rdb := redis.NewClient(&redis.Options{Addr: c.redis})
		opts = append(opts, server.WithCache(cache.New(rdb, c.cacheTTL)))
	}

	s := server.New(resolver, gateway, opts...)
	logger.Info("listening", "addr", c.addr, "entities", resolver.Index().Len())
	if err := http.ListenAndServe(c.addr, s.Handler()); err != nil {
		logger.Error("server stopped", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
