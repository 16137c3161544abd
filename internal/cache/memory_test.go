package cache

import (
	"context"
	"testing"

	"stockdash/internal/model"
)

func TestMemoryCachePutGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if _, ok := c.Get(ctx, "AAPL"); ok {
		t.Fatal("expected miss on empty cache")
	}

	if err := c.Put(ctx, []model.BatchQuote{
		{Symbol: "AAPL", Price: 180, ChangePercent: 1.2},
		{Symbol: "msft", Price: 400, ChangePercent: -0.4},
	}); err != nil {
		t.Fatalf("put: %v", err)
	}

	q, ok := c.Get(ctx, "aapl")
	if !ok || q.Price != 180 {
		t.Errorf("expected case-insensitive hit at 180, got %+v (hit=%v)", q, ok)
	}
	q, ok = c.Get(ctx, "MSFT")
	if !ok || q.Price != 400 {
		t.Errorf("expected MSFT hit at 400, got %+v (hit=%v)", q, ok)
	}
}

func TestMemoryCachePutOverwrites(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	_ = c.Put(ctx, []model.BatchQuote{{Symbol: "AAPL", Price: 180}})
	_ = c.Put(ctx, []model.BatchQuote{{Symbol: "AAPL", Price: 185}})

	q, _ := c.Get(ctx, "AAPL")
	if q.Price != 185 {
		t.Errorf("expected latest price 185, got %.2f", q.Price)
	}
}
