package resolver

import (
	"context"
	"log"
	"sync"

	"stockdash/internal/model"
)

const maxSuggestions = 20

// ScreenWatchlist fetches quote summaries for the whole watchlist
// concurrently and keeps the symbols analysts rate strong_buy or buy,
// truncated to 20 in watchlist order. A failing symbol is excluded, not
// fatal.
func (r *Resolver) ScreenWatchlist(ctx context.Context) []model.Suggestion {
	results := make([]*model.Suggestion, len(r.Watchlist))

	var wg sync.WaitGroup
	for i, sym := range r.Watchlist {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			sum, err := r.Provider.QuoteSummary(ctx, sym)
			if err != nil || sum.Recommendation == nil {
				return
			}
			key := sum.Recommendation.Key
			if key != "strong_buy" && key != "buy" {
				return
			}
			name := sum.ShortName
			if name == "" {
				name = sym
			}
			results[i] = &model.Suggestion{
				Symbol:            sym,
				ShortName:         name,
				Price:             sum.Price,
				ChangePercent:     sum.ChangePercent,
				RecommendationKey: key,
			}
		}(i, sym)
	}
	wg.Wait()

	suggestions := make([]model.Suggestion, 0, maxSuggestions)
	for _, s := range results {
		if s == nil {
			continue
		}
		suggestions = append(suggestions, *s)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

// TopGainer returns the watchlist symbol with the largest percent change
// today, first maximum winning ties. FallbackSymbol covers an empty
// watchlist and total batch failure.
func (r *Resolver) TopGainer(ctx context.Context) string {
	quotes := r.BatchQuotes(ctx, r.Watchlist)
	if len(quotes) == 0 {
		return FallbackSymbol
	}

	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.ChangePercent > best.ChangePercent {
			best = q
		}
	}
	if best.Symbol == "" {
		return FallbackSymbol
	}
	return best.Symbol
}

// BatchQuotes fetches live quotes for symbols in one call. Empty input
// means empty output with no call; total provider failure degrades to an
// empty result, which callers treat as "unknown" rather than an error.
func (r *Resolver) BatchQuotes(ctx context.Context, symbols []string) []model.BatchQuote {
	if len(symbols) == 0 {
		return []model.BatchQuote{}
	}

	quotes, err := r.Provider.BatchQuotes(ctx, symbols)
	if err != nil {
		log.Printf("[WARN] batch quotes failed: %v", err)
		return []model.BatchQuote{}
	}

	if r.Cache != nil && len(quotes) > 0 {
		if err := r.Cache.Put(ctx, quotes); err != nil {
			log.Printf("[WARN] quote cache put: %v", err)
		}
	}
	return quotes
}
