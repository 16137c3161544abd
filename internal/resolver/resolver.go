package resolver

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"stockdash/internal/cache"
	"stockdash/internal/model"
	"stockdash/internal/provider"
)

// ErrNoData means a ticker could not be resolved directly or via search.
var ErrNoData = errors.New("no data for ticker")

// Resolver maps user-entered tickers to canonical symbols and assembles
// the data bundle the dashboard renders.
type Resolver struct {
	Provider  provider.Provider
	Cache     cache.QuoteCache
	Watchlist []string
}

// New creates a Resolver. A nil watchlist falls back to DefaultWatchlist.
func New(p provider.Provider, qc cache.QuoteCache, watchlist []string) *Resolver {
	if len(watchlist) == 0 {
		watchlist = DefaultWatchlist
	}
	return &Resolver{Provider: p, Cache: qc, Watchlist: watchlist}
}

// windowStart computes the history window start for a range bucket.
// "max" is a deliberate 10-year approximation, not all available history.
func windowStart(end time.Time, rng string) time.Time {
	switch rng {
	case "1d":
		return end.AddDate(0, 0, -1)
	case "5d":
		return end.AddDate(0, 0, -5)
	case "1mo":
		return end.AddDate(0, -1, 0)
	case "1y":
		return end.AddDate(-1, 0, 0)
	case "5y":
		return end.AddDate(-5, 0, 0)
	case "max":
		return end.AddDate(-10, 0, 0)
	default:
		return end.AddDate(-1, 0, 0)
	}
}

// intradayInterval reports whether an interval code denotes sub-daily
// sampling (minutes or hours as opposed to days, weeks, months).
func intradayInterval(interval string) bool {
	switch {
	case strings.HasSuffix(interval, "mo"), strings.HasSuffix(interval, "wk"), strings.HasSuffix(interval, "d"):
		return false
	case strings.HasSuffix(interval, "m"), strings.HasSuffix(interval, "h"):
		return true
	default:
		return false
	}
}

// fetched is the result of one successful quote+chart attempt.
type fetched struct {
	symbol string
	quote  *model.Quote
	bars   []provider.Bar
}

func (r *Resolver) fetchQuoteAndChart(ctx context.Context, symbol string, start, end time.Time, interval string) (*fetched, error) {
	sym := strings.ToUpper(symbol)
	quote, err := r.Provider.Quote(ctx, sym)
	if err != nil {
		return nil, err
	}
	bars, err := r.Provider.Chart(ctx, sym, start, end, interval)
	if err != nil {
		return nil, err
	}
	return &fetched{symbol: sym, quote: quote, bars: bars}, nil
}

// resolveStep is one stage of the resolution chain. Stages run in order
// and the first success short-circuits the rest.
type resolveStep struct {
	name string
	run  func(ctx context.Context) (*fetched, error)
}

// Resolve maps ticker to a canonical symbol and returns its full bundle.
// Direct resolution is attempted first; on failure a symbol search
// supplies a candidate for one retry. Both failing yields ErrNoData.
// Missing news or recommendation never fails the call.
func (r *Resolver) Resolve(ctx context.Context, ticker, rng, interval string) (*model.StockBundle, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, ErrNoData
	}

	end := time.Now()
	start := windowStart(end, rng)

	steps := []resolveStep{
		{
			name: "direct",
			run: func(ctx context.Context) (*fetched, error) {
				return r.fetchQuoteAndChart(ctx, ticker, start, end, interval)
			},
		},
		{
			name: "search fallback",
			run: func(ctx context.Context) (*fetched, error) {
				sr, err := r.Provider.Search(ctx, ticker, 1, 0)
				if err != nil {
					return nil, err
				}
				if len(sr.Quotes) == 0 || sr.Quotes[0].Symbol == "" {
					return nil, ErrNoData
				}
				return r.fetchQuoteAndChart(ctx, sr.Quotes[0].Symbol, start, end, interval)
			},
		},
	}

	var got *fetched
	for _, step := range steps {
		f, err := step.run(ctx)
		if err != nil {
			log.Printf("[WARN] resolve %s: %s failed: %v", ticker, step.name, err)
			continue
		}
		got = f
		break
	}
	if got == nil {
		return nil, ErrNoData
	}

	bundle := &model.StockBundle{
		Symbol:  got.symbol,
		Quote:   *got.quote,
		History: shapeHistory(got.bars, interval),
		News:    []model.NewsItem{},
	}

	// Analyst recommendation: absence is not an error.
	if sum, err := r.Provider.QuoteSummary(ctx, got.symbol); err != nil {
		log.Printf("[WARN] recommendation fetch for %s failed: %v", got.symbol, err)
	} else if sum.Recommendation != nil {
		bundle.Recommendation = sum.Recommendation
	}

	// News digest: same deal.
	if sr, err := r.Provider.Search(ctx, got.symbol, 0, 5); err != nil {
		log.Printf("[WARN] news fetch for %s failed: %v", got.symbol, err)
	} else if len(sr.News) > 0 {
		if len(sr.News) > 5 {
			sr.News = sr.News[:5]
		}
		bundle.News = sr.News
	}

	return bundle, nil
}

// shapeHistory converts raw bars to chart points, choosing the marker
// representation from the sampling interval and dropping any bar that
// repeats the previous marker (first occurrence wins).
func shapeHistory(bars []provider.Bar, interval string) []model.HistoryPoint {
	intraday := intradayInterval(interval)
	points := make([]model.HistoryPoint, 0, len(bars))
	seen := make(map[string]bool, len(bars))

	for _, b := range bars {
		t := time.Unix(b.Timestamp, 0)
		var mark model.TimeMark
		if intraday {
			mark = model.IntradayMark(t)
		} else {
			mark = model.DailyMark(t)
		}
		if seen[mark.Key()] {
			continue
		}
		seen[mark.Key()] = true
		points = append(points, model.HistoryPoint{
			Time:   mark,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	return points
}
