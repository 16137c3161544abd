package resolver

import (
	"context"
	"strings"

	"stockdash/internal/model"
)

const maxSearchMatches = 10

// SearchSymbols returns up to 10 tradable matches for a query. An empty
// query returns an empty result without calling the provider.
func (r *Resolver) SearchSymbols(ctx context.Context, query string) ([]model.SymbolMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SymbolMatch{}, nil
	}

	sr, err := r.Provider.Search(ctx, query, maxSearchMatches, 0)
	if err != nil {
		return nil, err
	}

	matches := make([]model.SymbolMatch, 0, len(sr.Quotes))
	for _, q := range sr.Quotes {
		if q.Aggregator {
			continue // provider-internal index entries are not tradable
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		if name == "" {
			name = q.Symbol
		}
		matches = append(matches, model.SymbolMatch{
			Symbol:    q.Symbol,
			Name:      name,
			Exchange:  q.Exchange,
			QuoteType: q.QuoteType,
		})
		if len(matches) == maxSearchMatches {
			break
		}
	}
	return matches, nil
}
