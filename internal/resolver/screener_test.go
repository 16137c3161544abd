package resolver

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stockdash/internal/cache"
	"stockdash/internal/model"
	"stockdash/internal/provider"
)

// countingProvider wraps a MockProvider and counts batch quote calls.
type countingProvider struct {
	*provider.MockProvider
	batchCalls atomic.Int32
}

func (c *countingProvider) BatchQuotes(ctx context.Context, symbols []string) ([]model.BatchQuote, error) {
	c.batchCalls.Add(1)
	return c.MockProvider.BatchQuotes(ctx, symbols)
}

func screenerProvider(watchlist []string, keys map[string]string) *provider.MockProvider {
	mock := &provider.MockProvider{
		Quotes:      map[string]model.Quote{},
		Summaries:   map[string]provider.Summary{},
		FailSymbols: map[string]bool{},
	}
	for _, sym := range watchlist {
		key, ok := keys[sym]
		if !ok {
			key = "buy"
		}
		mock.Summaries[sym] = provider.Summary{
			Recommendation: &model.Recommendation{Mean: 2, Key: key, AnalystCount: 10},
			ShortName:      sym + " Inc.",
			Price:          100,
			ChangePercent:  1,
		}
	}
	return mock
}

func TestScreenWatchlistFiltersAndTruncates(t *testing.T) {
	watchlist := make([]string, 30)
	for i := range watchlist {
		watchlist[i] = fmt.Sprintf("S%02d", i)
	}
	keys := map[string]string{
		"S01": "hold",
		"S02": "sell",
		"S03": "strong_sell",
		"S04": "strong_buy",
	}
	mock := screenerProvider(watchlist, keys)
	mock.FailSymbols["S05"] = true

	r := New(mock, nil, watchlist)
	suggestions := r.ScreenWatchlist(context.Background())

	if len(suggestions) > 20 {
		t.Fatalf("expected at most 20 suggestions, got %d", len(suggestions))
	}
	for _, s := range suggestions {
		if s.RecommendationKey != "strong_buy" && s.RecommendationKey != "buy" {
			t.Errorf("unexpected recommendation key %q for %s", s.RecommendationKey, s.Symbol)
		}
		if s.Symbol == "S01" || s.Symbol == "S02" || s.Symbol == "S03" || s.Symbol == "S05" {
			t.Errorf("symbol %s should have been filtered out", s.Symbol)
		}
	}

	// Watchlist order is preserved, not ranked by strength.
	if suggestions[0].Symbol != "S00" {
		t.Errorf("expected first survivor S00, got %s", suggestions[0].Symbol)
	}
	if suggestions[1].Symbol != "S04" {
		t.Errorf("expected second survivor S04, got %s", suggestions[1].Symbol)
	}
}

func TestTopGainerPicksFirstMax(t *testing.T) {
	watchlist := []string{"AAA", "BBB", "CCC", "DDD"}
	mock := &provider.MockProvider{
		Quotes: map[string]model.Quote{
			"AAA": {Symbol: "AAA", Price: 10, ChangePercent: 1.5},
			"BBB": {Symbol: "BBB", Price: 20, ChangePercent: 3.2},
			"CCC": {Symbol: "CCC", Price: 30, ChangePercent: 3.2}, // tie, BBB wins
			"DDD": {Symbol: "DDD", Price: 40, ChangePercent: -2},
		},
	}
	r := New(mock, nil, watchlist)

	if got := r.TopGainer(context.Background()); got != "BBB" {
		t.Errorf("expected BBB, got %s", got)
	}
}

func TestTopGainerFallback(t *testing.T) {
	failing := New(&provider.MockProvider{FailAll: true}, nil, []string{"AAA"})
	if got := failing.TopGainer(context.Background()); got != FallbackSymbol {
		t.Errorf("expected %s on total failure, got %s", FallbackSymbol, got)
	}

	empty := &Resolver{Provider: &provider.MockProvider{}, Watchlist: nil}
	if got := empty.TopGainer(context.Background()); got != FallbackSymbol {
		t.Errorf("expected %s on empty watchlist, got %s", FallbackSymbol, got)
	}
}

func TestBatchQuotesEmptyInputMakesNoCall(t *testing.T) {
	cp := &countingProvider{MockProvider: &provider.MockProvider{}}
	r := New(cp, nil, []string{"AAA"})

	quotes := r.BatchQuotes(context.Background(), nil)
	if len(quotes) != 0 {
		t.Errorf("expected empty result, got %d", len(quotes))
	}
	if cp.batchCalls.Load() != 0 {
		t.Errorf("expected no provider call for empty input, got %d", cp.batchCalls.Load())
	}
}

func TestBatchQuotesFailureDegradesToEmpty(t *testing.T) {
	r := New(&provider.MockProvider{FailAll: true}, nil, []string{"AAA"})
	quotes := r.BatchQuotes(context.Background(), []string{"AAA"})
	if quotes == nil || len(quotes) != 0 {
		t.Errorf("expected empty non-nil result on failure, got %v", quotes)
	}
}

func TestBatchQuotesFillsCache(t *testing.T) {
	mock := &provider.MockProvider{
		Quotes: map[string]model.Quote{
			"AAPL": {Symbol: "AAPL", Price: 180, ChangePercent: 1.2},
		},
	}
	qc := cache.NewMemoryCache()
	r := New(mock, qc, []string{"AAPL"})

	r.BatchQuotes(context.Background(), []string{"AAPL"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q, ok := qc.Get(ctx, "aapl")
	if !ok || q.Price != 180 {
		t.Errorf("expected cached AAPL quote at 180, got %+v (hit=%v)", q, ok)
	}
}
