package agent

import (
	"context"

	"github.com/finkg/financekg"
	"github.com/finkg/financekg/renderer"
	"google.golang.org/genai"
)

// formatExampleCount is how many reference pairs the model sees up front.
const formatExampleCount = 5

// stringParam declares a single required string parameter.
func stringParam(name, description string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			name: {Type: genai.TypeString, Description: description},
		},
		Required: []string{name},
	}
}

// Tools builds the full tool library over the resolver and gateway: the
// identity tools backed by the canonical index, and the market-data tools
// forwarded through the gateway.
func Tools(resolver *financekg.Resolver, gateway *financekg.Gateway) []*Func {
	return []*Func{
		matchTickerOrName(resolver),
		getCompanyName(resolver),
		getTickerByName(resolver),
		getPriceHistory(gateway),
		getDetailedPriceHistory(gateway),
		getDividendsHistory(gateway),
		getMarketCapitalization(gateway),
		getEPS(gateway),
		getPERatio(gateway),
		getInfo(gateway),
	}
}

func matchTickerOrName(resolver *financekg.Resolver) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "match_ticker_or_name",
			Description: `Checks if the given input is a valid ticker symbol or a company name.
If it's a valid ticker, returns the corresponding company name.
If it's a valid company name, returns the corresponding ticker.
Otherwise, returns an appropriate error message.`,
			Parameters: stringParam("query", "A short string representing either a single ticker symbol or a full company name."),
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A message indicating whether the input matches a known ticker or company, and the corresponding pair.",
			},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			query, err := stringArg(args, "query")
			if err != nil {
				return fail(id, "match_ticker_or_name", err)
			}
			return respond(id, "match_ticker_or_name", resolver.Resolve(query).Message())
		},
	}
}

func getCompanyName(resolver *financekg.Resolver) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "get_company_name",
			Description: `Retrieves candidate company names matching a natural language query.
Input must not be a ticker symbol (e.g. 'AAPL', 'MSFT'), but a descriptive name (e.g. 'Apple', 'Microsoft').
This tool is typically used as the first step before resolving a company's ticker symbol.`,
			Parameters: stringParam("query", "A descriptive company name query."),
			Response: &genai.Schema{
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Top matched company names, most relevant first.",
			},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			query, err := stringArg(args, "query")
			if err != nil {
				return fail(id, "get_company_name", err)
			}
			names, err := resolver.CandidateNames(ctx, query)
			if err != nil {
				return fail(id, "get_company_name", err)
			}
			return respond(id, "get_company_name", names)
		},
	}
}

func getTickerByName(resolver *financekg.Resolver) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "get_ticker_by_name",
			Description: `Retrieves the ticker symbol associated with a specific company name.
The input should be a full company name, preferably obtained via get_company_name.
Do not pass ticker-like strings (e.g. 'TSLA', 'MUJ') directly to this tool.`,
			Parameters: stringParam("company_name", "The exact canonical company name."),
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The ticker symbol of the company.",
			},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, err := stringArg(args, "company_name")
			if err != nil {
				return fail(id, "get_ticker_by_name", err)
			}
			ticker, err := resolver.TickerByName(name)
			if err != nil {
				return fail(id, "get_ticker_by_name", err)
			}
			return respond(id, "get_ticker_by_name", ticker)
		},
	}
}

// tickerParam is the shared parameter schema of the market-data tools.
func tickerParam() *genai.Schema {
	return stringParam("ticker_name", "The ticker symbol, in normalized form for accurate lookup.")
}

func getPriceHistory(gateway *financekg.Gateway) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_price_history",
			Description: "Return 1 year history of daily Open price, Close price, High price, Low price and trading Volume.",
			Parameters:  tickerParam(),
			Response: &genai.Schema{
				Type:        genai.TypeObject,
				Description: "One year of daily OHLCV bars keyed by timestamp.",
			},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, err := stringArg(args, "ticker_name")
			if err != nil {
				return fail(id, "get_price_history", err)
			}
			bars, err := gateway.DailyHistory(ctx, ticker)
			if err != nil {
				return fail(id, "get_price_history", err)
			}
			return respond(id, "get_price_history", financekg.KeyedDaily(bars))
		},
	}
}

func getDetailedPriceHistory(gateway *financekg.Gateway) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "get_detailed_price_history",
			Description: `Return the past 5 trading days' history of 1 minute Open, Close, High, Low and Volume, from 09:30:00 to 15:59:00 market time.
The Open at 09:30 may not equal the daily Open, the Close at 15:59 may not equal the daily Close, and the sum of 1 minute Volume may not equal the daily Volume.`,
			Parameters: tickerParam(),
			Response: &genai.Schema{
				Type:        genai.TypeObject,
				Description: "Five trading days of one-minute OHLCV bars keyed by timestamp.",
			},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, err := stringArg(args, "ticker_name")
			if err != nil {
				return fail(id, "get_detailed_price_history", err)
			}
			bars, err := gateway.IntradayHistory(ctx, ticker)
			if err != nil {
				return fail(id, "get_detailed_price_history", err)
			}
			return respond(id, "get_detailed_price_history", financekg.KeyedIntraday(bars))
		},
	}
}

func getDividendsHistory(gateway *financekg.Gateway) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_dividends_history",
			Description: "Return dividend history of a ticker.",
			Parameters:  tickerParam(),
			Response: &genai.Schema{
				Type:        genai.TypeObject,
				Description: "Dividend amounts keyed by ex-date timestamp.",
			},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, err := stringArg(args, "ticker_name")
			if err != nil {
				return fail(id, "get_dividends_history", err)
			}
			divs, err := gateway.Dividends(ctx, ticker)
			if err != nil {
				return fail(id, "get_dividends_history", err)
			}
			return respond(id, "get_dividends_history", financekg.KeyedDividends(divs))
		},
	}
}

func getMarketCapitalization(gateway *financekg.Gateway) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_market_capitalization",
			Description: "Return the market capitalization of a ticker.",
			Parameters:  tickerParam(),
			Response:    &genai.Schema{Type: genai.TypeNumber, Description: "Market capitalization."},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, err := stringArg(args, "ticker_name")
			if err != nil {
				return fail(id, "get_market_capitalization", err)
			}
			value, err := gateway.MarketCapitalization(ctx, ticker)
			if err != nil {
				return fail(id, "get_market_capitalization", err)
			}
			return respond(id, "get_market_capitalization", value)
		},
	}
}

func getEPS(gateway *financekg.Gateway) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_eps",
			Description: "Return earnings per share of a ticker.",
			Parameters:  tickerParam(),
			Response:    &genai.Schema{Type: genai.TypeNumber, Description: "Earnings per share."},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, err := stringArg(args, "ticker_name")
			if err != nil {
				return fail(id, "get_eps", err)
			}
			value, err := gateway.EarningsPerShare(ctx, ticker)
			if err != nil {
				return fail(id, "get_eps", err)
			}
			return respond(id, "get_eps", value)
		},
	}
}

func getPERatio(gateway *financekg.Gateway) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_pe_ratio",
			Description: "Return price-to-earnings ratio of a ticker.",
			Parameters:  tickerParam(),
			Response:    &genai.Schema{Type: genai.TypeNumber, Description: "Price-to-earnings ratio."},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, err := stringArg(args, "ticker_name")
			if err != nil {
				return fail(id, "get_pe_ratio", err)
			}
			value, err := gateway.PriceEarningsRatio(ctx, ticker)
			if err != nil {
				return fail(id, "get_pe_ratio", err)
			}
			return respond(id, "get_pe_ratio", value)
		},
	}
}

func getInfo(gateway *financekg.Gateway) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "get_info",
			Description: "Return meta data of a ticker.",
			Parameters:  tickerParam(),
			Response:    &genai.Schema{Type: genai.TypeObject, Description: "Meta information."},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, err := stringArg(args, "ticker_name")
			if err != nil {
				return fail(id, "get_info", err)
			}
			info, err := gateway.Info(ctx, ticker)
			if err != nil {
				return fail(id, "get_info", err)
			}
			return respond(id, "get_info", map[string]any(info))
		},
	}
}

// NewAnalyst builds the market analyst expert: a chat configured with the
// full tool library and a system instruction that teaches the resolution
// workflow, including the company-format reference pairs.
func NewAnalyst(resolver *financekg.Resolver, gateway *financekg.Gateway) *Expert {
	tools := Tools(resolver, gateway)
	return &Expert{
		Name: "Analyst",
		Description: `This is the market analyst. He can resolve company names and ticker symbols
against the canonical index and retrieve price history, dividends, valuation
metrics and metadata for any resolved ticker.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(tools)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a financial market analyst answering questions about listed companies.

			Always resolve the user's wording to a canonical ticker before fetching data:
			use match_ticker_or_name first; if it does not recognize the input, use
			get_company_name to list candidates and get_ticker_by_name to pick one.
			Never guess tickers.

			Well-formed company name and ticker pairs look like this:

` + renderer.CompanyFormat(resolver.Index(), formatExampleCount) + `
				`}}},
		},
		Library: NewLibrary(tools),
	}
}
