package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/finkg/financekg"
	"github.com/finkg/financekg/cache"
	"github.com/finkg/financekg/renderer"
	"github.com/shopspring/decimal"
)

// arg extracts a tool argument: from the query string on GET, from the JSON
// body on POST. Query parameters win when both are present.
func arg(r *http.Request, name string) (string, error) {
	if v := r.URL.Query().Get(name); v != "" {
		return v, nil
	}
	if r.Method == http.MethodPost && r.Body != nil {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			if v := body[name]; v != "" {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("missing argument %q", name)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	query, err := arg(r, "query")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	res := s.Resolver().Resolve(query)
	s.writeJSON(w, http.StatusOK, struct {
		financekg.Resolution
		Message string `json:"message"`
	}{res, res.Message()})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	query, err := arg(r, "query")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	names, err := s.Resolver().CandidateNames(r.Context(), query)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"candidates": names})
}

func (s *Server) handleTickerByName(w http.ResponseWriter, r *http.Request) {
	name, err := arg(r, "company_name")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	ticker, err := s.Resolver().TickerByName(name)
	if err != nil {
		var nf *financekg.NotFoundError
		if errors.As(err, &nf) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"ticker": ticker})
}

// fetch memoizes a market-data call under op:TICKER when a cache is wired.
func fetch[T any](s *Server, r *http.Request, op, ticker string, fn func() (T, error)) (T, error) {
	key := fmt.Sprintf("fkg:%s:%s", op, financekg.SymbolForm(ticker))
	return cache.Memoize(r.Context(), s.cache, key, fn)
}

// market runs one gateway-backed tool handler: argument extraction, the
// memoized call, upstream error mapping.
func market[T any](s *Server, w http.ResponseWriter, r *http.Request, op string, call func(ticker string) (T, error)) {
	ticker, err := arg(r, "ticker_name")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	payload, err := fetch(s, r, op, ticker, func() (T, error) { return call(ticker) })
	if err != nil {
		s.logger.Warn("market data call failed", "op", op, "ticker", ticker, "err", err)
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	market(s, w, r, "daily", func(ticker string) (map[string]financekg.Bar, error) {
		bars, err := s.gateway.DailyHistory(r.Context(), ticker)
		if err != nil {
			return nil, err
		}
		return financekg.KeyedDaily(bars), nil
	})
}

func (s *Server) handleIntraday(w http.ResponseWriter, r *http.Request) {
	market(s, w, r, "intraday", func(ticker string) (map[string]financekg.Bar, error) {
		bars, err := s.gateway.IntradayHistory(r.Context(), ticker)
		if err != nil {
			return nil, err
		}
		return financekg.KeyedIntraday(bars), nil
	})
}

func (s *Server) handleDividends(w http.ResponseWriter, r *http.Request) {
	market(s, w, r, "dividends", func(ticker string) (map[string]decimal.Decimal, error) {
		divs, err := s.gateway.Dividends(r.Context(), ticker)
		if err != nil {
			return nil, err
		}
		return financekg.KeyedDividends(divs), nil
	})
}

func (s *Server) handleMarketCap(w http.ResponseWriter, r *http.Request) {
	market(s, w, r, "mcap", func(ticker string) (json.Number, error) {
		v, err := s.gateway.MarketCapitalization(r.Context(), ticker)
		return json.Number(v.String()), err
	})
}

func (s *Server) handleEPS(w http.ResponseWriter, r *http.Request) {
	market(s, w, r, "eps", func(ticker string) (json.Number, error) {
		v, err := s.gateway.EarningsPerShare(r.Context(), ticker)
		return json.Number(v.String()), err
	})
}

func (s *Server) handlePERatio(w http.ResponseWriter, r *http.Request) {
	market(s, w, r, "pe", func(ticker string) (json.Number, error) {
		v, err := s.gateway.PriceEarningsRatio(r.Context(), ticker)
		return json.Number(v.String()), err
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	market(s, w, r, "info", func(ticker string) (financekg.Info, error) {
		return s.gateway.Info(r.Context(), ticker)
	})
}

func (s *Server) handleCompanyFormat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, renderer.CompanyFormat(s.Resolver().Index(), 0))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"entities": s.Resolver().Index().Len(),
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	resolver, err := s.reloader()
	if err != nil {
		s.logger.Error("reload failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.resolver.Store(resolver)
	s.logger.Info("index reloaded", "entities", resolver.Index().Len())
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "reloaded",
		"entities": resolver.Index().Len(),
	})
}
