package cache

import (
	"context"
	"strings"
	"sync"

	"stockdash/internal/model"
)

// MemoryCache is the in-process QuoteCache used when Redis is not
// configured.
type MemoryCache struct {
	mu     sync.RWMutex
	quotes map[string]model.BatchQuote
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{quotes: make(map[string]model.BatchQuote)}
}

func (c *MemoryCache) Put(_ context.Context, quotes []model.BatchQuote) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, q := range quotes {
		c.quotes[strings.ToUpper(q.Symbol)] = q
	}
	return nil
}

func (c *MemoryCache) Get(_ context.Context, symbol string) (model.BatchQuote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.quotes[strings.ToUpper(symbol)]
	return q, ok
}
