package cache

import (
	"context"

	"stockdash/internal/model"
)

// QuoteCache stores the latest batch quote per symbol. Misses are not
// errors; callers fall back to fetching.
type QuoteCache interface {
	Put(ctx context.Context, quotes []model.BatchQuote) error
	Get(ctx context.Context, symbol string) (model.BatchQuote, bool)
}
