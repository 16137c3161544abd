package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockdash/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
// Symbols listed in FailSymbols error on every per-symbol call; FailAll
// errors on everything.
type MockProvider struct {
	Quotes      map[string]model.Quote
	Bars        map[string][]Bar
	Summaries   map[string]Summary
	SearchHits  map[string]SearchResult
	FailSymbols map[string]bool
	FailAll     bool
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) fail(symbol string) error {
	if m.FailAll {
		return fmt.Errorf("mock: provider down")
	}
	if m.FailSymbols[strings.ToUpper(symbol)] {
		return fmt.Errorf("mock: %s unavailable", symbol)
	}
	return nil
}

func (m *MockProvider) Quote(_ context.Context, symbol string) (*model.Quote, error) {
	if err := m.fail(symbol); err != nil {
		return nil, err
	}
	q, ok := m.Quotes[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("mock: unknown symbol %s", symbol)
	}
	return &q, nil
}

func (m *MockProvider) BatchQuotes(_ context.Context, symbols []string) ([]model.BatchQuote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	if m.FailAll {
		return nil, fmt.Errorf("mock: provider down")
	}
	out := make([]model.BatchQuote, 0, len(symbols))
	for _, s := range symbols {
		q, ok := m.Quotes[strings.ToUpper(s)]
		if !ok {
			continue
		}
		out = append(out, model.BatchQuote{
			Symbol:        q.Symbol,
			Price:         q.Price,
			ChangePercent: q.ChangePercent,
		})
	}
	return out, nil
}

func (m *MockProvider) Chart(_ context.Context, symbol string, _, _ time.Time, _ string) ([]Bar, error) {
	if err := m.fail(symbol); err != nil {
		return nil, err
	}
	bars, ok := m.Bars[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("mock: no chart for %s", symbol)
	}
	return bars, nil
}

func (m *MockProvider) Search(_ context.Context, query string, _, _ int) (*SearchResult, error) {
	if m.FailAll {
		return nil, fmt.Errorf("mock: provider down")
	}
	if hit, ok := m.SearchHits[strings.ToLower(query)]; ok {
		return &hit, nil
	}
	return &SearchResult{}, nil
}

func (m *MockProvider) QuoteSummary(_ context.Context, symbol string) (*Summary, error) {
	if err := m.fail(symbol); err != nil {
		return nil, err
	}
	s, ok := m.Summaries[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("mock: no summary for %s", symbol)
	}
	return &s, nil
}

// GenerateBars builds a deterministic bar series around a base price,
// one bar per day ending today.
func GenerateBars(basePrice float64, count int) []Bar {
	bars := make([]Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = Bar{
			Timestamp: time.Now().AddDate(0, 0, -(count - i)).Unix(),
			Open:      p * 0.999,
			High:      p * 1.005,
			Low:       p * 0.995,
			Close:     p,
			Volume:    1000000,
		}
	}
	return bars
}
