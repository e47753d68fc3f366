// Package server exposes the resolution and market-data tools over HTTP.
//
// Every tool from the function-calling surface gets a route under /tools/,
// the company-format reference resource is served under /resources/, and
// /admin/reload rebuilds the index without restarting the process.
package server

import (
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/finkg/financekg"
	"github.com/finkg/financekg/cache"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Reloader rebuilds the resolver from the authoritative dataset. It is
// called by the /admin/reload endpoint; the returned resolver replaces the
// serving one atomically.
type Reloader func() (*financekg.Resolver, error)

// Server serves the tool-call surface. The resolver is swapped atomically
// on reload, so in-flight requests keep the index they started with.
type Server struct {
	resolver  atomic.Pointer[financekg.Resolver]
	gateway   *financekg.Gateway
	cache     *cache.Cache
	logger    *slog.Logger
	reloader  Reloader
	accessLog io.Writer
	router    *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithCache memoizes the market-data tool responses.
func WithCache(c *cache.Cache) Option {
	return func(s *Server) { s.cache = c }
}

// WithReloader enables the /admin/reload endpoint.
func WithReloader(r Reloader) Option {
	return func(s *Server) { s.reloader = r }
}

// WithAccessLog writes Apache-style request logs to w.
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.accessLog = w }
}

// New builds a Server over the given resolver and gateway.
func New(resolver *financekg.Resolver, gateway *financekg.Gateway, opts ...Option) *Server {
	s := &Server{
		gateway: gateway,
		logger:  slog.Default(),
	}
	s.resolver.Store(resolver)
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/tools/match_ticker_or_name", s.handleMatch).Methods("GET", "POST")
	router.HandleFunc("/tools/get_company_name", s.handleCandidates).Methods("GET", "POST")
	router.HandleFunc("/tools/get_ticker_by_name", s.handleTickerByName).Methods("GET", "POST")
	router.HandleFunc("/tools/get_price_history", s.handleDaily).Methods("GET", "POST")
	router.HandleFunc("/tools/get_detailed_price_history", s.handleIntraday).Methods("GET", "POST")
	router.HandleFunc("/tools/get_dividends_history", s.handleDividends).Methods("GET", "POST")
	router.HandleFunc("/tools/get_market_capitalization", s.handleMarketCap).Methods("GET", "POST")
	router.HandleFunc("/tools/get_eps", s.handleEPS).Methods("GET", "POST")
	router.HandleFunc("/tools/get_pe_ratio", s.handlePERatio).Methods("GET", "POST")
	router.HandleFunc("/tools/get_info", s.handleInfo).Methods("GET", "POST")

	router.HandleFunc("/resources/company-format", s.handleCompanyFormat).Methods("GET")
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	if s.reloader != nil {
		router.HandleFunc("/admin/reload", s.handleReload).Methods("POST")
	}
	return router
}

// Handler returns the full middleware chain around the router.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	if s.accessLog != nil {
		h = handlers.LoggingHandler(s.accessLog, h)
	}
	return handlers.RecoveryHandler()(h)
}

// Resolver returns the currently serving resolver.
func (s *Server) Resolver() *financekg.Resolver {
	return s.resolver.Load()
}
