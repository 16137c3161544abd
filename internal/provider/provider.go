package provider

import (
	"context"
	"time"

	"stockdash/internal/model"
)

// Bar is one raw candlestick as returned by the provider, before the
// resolver shapes its time marker for the charting contract.
type Bar struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// SearchQuote is one symbol row of a search response. Aggregator marks
// rows that are provider-internal index entries rather than tradable
// instruments; callers filter those out.
type SearchQuote struct {
	Symbol     string
	ShortName  string
	LongName   string
	Exchange   string
	QuoteType  string
	Aggregator bool
}

// SearchResult holds both halves of a combined symbol/news search.
type SearchResult struct {
	Quotes []SearchQuote
	News   []model.NewsItem
}

// Summary carries the quoteSummary modules the screener and the analyst
// gauge consume. Recommendation is nil when the financialData module is
// missing for the symbol.
type Summary struct {
	Recommendation *model.Recommendation
	ShortName      string
	Price          float64
	ChangePercent  float64
}

// Provider is the narrow contract to the financial data source. Every
// call is network-latent and fallible; callers decide what a failure
// degrades to.
type Provider interface {
	Quote(ctx context.Context, symbol string) (*model.Quote, error)
	BatchQuotes(ctx context.Context, symbols []string) ([]model.BatchQuote, error)
	Chart(ctx context.Context, symbol string, start, end time.Time, interval string) ([]Bar, error)
	Search(ctx context.Context, query string, quotesCount, newsCount int) (*SearchResult, error)
	QuoteSummary(ctx context.Context, symbol string) (*Summary, error)
	Name() string
}
