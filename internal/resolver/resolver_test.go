package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockdash/internal/model"
	"stockdash/internal/provider"
)

func testProvider() *provider.MockProvider {
	return &provider.MockProvider{
		Quotes: map[string]model.Quote{
			"AAPL": {Symbol: "AAPL", ShortName: "Apple Inc.", Price: 180, ChangePercent: 1.2},
		},
		Bars: map[string][]provider.Bar{
			"AAPL": provider.GenerateBars(180, 30),
		},
		Summaries:   map[string]provider.Summary{},
		SearchHits:  map[string]provider.SearchResult{},
		FailSymbols: map[string]bool{},
	}
}

func TestResolveDirect(t *testing.T) {
	r := New(testProvider(), nil, []string{"AAPL"})

	bundle, err := r.Resolve(context.Background(), "aapl", "1y", "1d")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if bundle.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", bundle.Symbol)
	}
	if bundle.Quote.Price != 180 {
		t.Errorf("expected price 180, got %.2f", bundle.Quote.Price)
	}
	if len(bundle.History) == 0 {
		t.Fatal("expected history bars")
	}
	if bundle.News == nil {
		t.Error("news must be an empty slice, not nil")
	}
	if bundle.Recommendation != nil {
		t.Error("expected no recommendation when summary fetch fails")
	}
}

func TestResolveSearchFallback(t *testing.T) {
	mock := testProvider()
	mock.SearchHits["apple inc"] = provider.SearchResult{
		Quotes: []provider.SearchQuote{{Symbol: "AAPL", ShortName: "Apple Inc."}},
	}
	r := New(mock, nil, []string{"AAPL"})

	bundle, err := r.Resolve(context.Background(), "apple inc", "1y", "1d")
	if err != nil {
		t.Fatalf("resolve via fallback: %v", err)
	}
	if bundle.Symbol != "AAPL" {
		t.Errorf("expected fallback symbol AAPL, got %s", bundle.Symbol)
	}
}

func TestResolveNoData(t *testing.T) {
	r := New(testProvider(), nil, []string{"AAPL"})

	_, err := r.Resolve(context.Background(), "ZZZZZZ", "1y", "1d")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}

	_, err = r.Resolve(context.Background(), "  ", "1y", "1d")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for blank ticker, got %v", err)
	}
}

func TestResolveRecommendationAndNewsCap(t *testing.T) {
	mock := testProvider()
	mock.Summaries["AAPL"] = provider.Summary{
		Recommendation: &model.Recommendation{Mean: 1.8, Key: "buy", TargetMeanPrice: 210, AnalystCount: 35},
	}
	news := make([]model.NewsItem, 8)
	for i := range news {
		news[i] = model.NewsItem{ID: string(rune('a' + i)), Title: "headline"}
	}
	mock.SearchHits["aapl"] = provider.SearchResult{News: news}
	r := New(mock, nil, []string{"AAPL"})

	bundle, err := r.Resolve(context.Background(), "AAPL", "1mo", "1d")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if bundle.Recommendation == nil || bundle.Recommendation.Key != "buy" {
		t.Errorf("expected buy recommendation, got %+v", bundle.Recommendation)
	}
	if len(bundle.News) != 5 {
		t.Errorf("expected news capped at 5, got %d", len(bundle.News))
	}
}

func TestIntradayInterval(t *testing.T) {
	tests := []struct {
		interval string
		intraday bool
	}{
		{"1m", true},
		{"5m", true},
		{"30m", true},
		{"90m", true},
		{"1h", true},
		{"1d", false},
		{"5d", false},
		{"1wk", false},
		{"1mo", false},
		{"3mo", false},
	}
	for _, tt := range tests {
		if got := intradayInterval(tt.interval); got != tt.intraday {
			t.Errorf("intradayInterval(%q) = %v, want %v", tt.interval, got, tt.intraday)
		}
	}
}

func TestShapeHistoryMarkers(t *testing.T) {
	bars := []provider.Bar{
		{Timestamp: time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC).Unix(), Close: 100},
		{Timestamp: time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC).Unix(), Close: 101},
	}

	intraday := shapeHistory(bars, "5m")
	for _, p := range intraday {
		if !p.Time.Intraday() {
			t.Errorf("expected timestamp marker for 5m interval, got date %q", p.Time.Date())
		}
	}
	if len(intraday) != 2 {
		t.Errorf("expected 2 intraday points, got %d", len(intraday))
	}

	daily := shapeHistory(bars, "1d")
	for _, p := range daily {
		if p.Time.Intraday() {
			t.Errorf("expected date marker for 1d interval, got timestamp %d", p.Time.Unix())
		}
	}
	// Both bars fall on the same calendar day: the duplicate is dropped.
	if len(daily) != 1 {
		t.Errorf("expected duplicate daily marker dropped, got %d points", len(daily))
	}
	if daily[0].Close != 100 {
		t.Errorf("first occurrence should win, got close %.2f", daily[0].Close)
	}
}

func TestWindowStart(t *testing.T) {
	end := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		rng  string
		want time.Time
	}{
		{"1d", end.AddDate(0, 0, -1)},
		{"5d", end.AddDate(0, 0, -5)},
		{"1mo", end.AddDate(0, -1, 0)},
		{"1y", end.AddDate(-1, 0, 0)},
		{"5y", end.AddDate(-5, 0, 0)},
		{"max", end.AddDate(-10, 0, 0)},
		{"bogus", end.AddDate(-1, 0, 0)},
	}
	for _, tt := range tests {
		if got := windowStart(end, tt.rng); !got.Equal(tt.want) {
			t.Errorf("windowStart(%q) = %v, want %v", tt.rng, got, tt.want)
		}
	}
}
