package scheduler

import (
	"context"
	"testing"

	"stockdash/internal/model"
	"stockdash/internal/provider"
	"stockdash/internal/resolver"
)

func TestRegisterRejectsBadCron(t *testing.T) {
	r := resolver.New(&provider.MockProvider{}, nil, []string{"AAPL"})
	s := NewScheduler(context.Background(), r)
	if err := s.Register("not a cron expression"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

func TestRunNowUpdatesSnapshot(t *testing.T) {
	mock := &provider.MockProvider{
		Quotes: map[string]model.Quote{
			"AAPL": {Symbol: "AAPL", Price: 180, ChangePercent: 1.2},
		},
		Summaries: map[string]provider.Summary{
			"AAPL": {
				Recommendation: &model.Recommendation{Mean: 1.8, Key: "strong_buy"},
				ShortName:      "Apple Inc.",
				Price:          180,
				ChangePercent:  1.2,
			},
		},
	}
	r := resolver.New(mock, nil, []string{"AAPL"})
	s := NewScheduler(context.Background(), r)

	if !s.Current().RefreshedAt.IsZero() {
		t.Fatal("expected zero snapshot before first run")
	}

	s.RunNow()

	snap := s.Current()
	if snap.RefreshedAt.IsZero() {
		t.Fatal("expected snapshot timestamp after RunNow")
	}
	if len(snap.Suggestions) != 1 || snap.Suggestions[0].Symbol != "AAPL" {
		t.Errorf("unexpected suggestions: %+v", snap.Suggestions)
	}
	if snap.TopGainer != "AAPL" {
		t.Errorf("expected top gainer AAPL, got %s", snap.TopGainer)
	}
}
