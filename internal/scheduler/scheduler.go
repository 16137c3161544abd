package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"stockdash/internal/model"
	"stockdash/internal/resolver"

	"github.com/robfig/cron/v3"
)

// Snapshot is the latest screener output served by the HTTP layer.
type Snapshot struct {
	Suggestions []model.Suggestion
	TopGainer   string
	RefreshedAt time.Time
}

// Scheduler reruns the watchlist screener on a cron schedule and keeps
// the latest result for readers.
type Scheduler struct {
	Cron     *cron.Cron
	Resolver *resolver.Resolver
	Ctx      context.Context

	mu   sync.RWMutex
	snap Snapshot
}

// NewScheduler creates a Scheduler.
func NewScheduler(ctx context.Context, r *resolver.Resolver) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Resolver: r,
		Ctx:      ctx,
	}
}

// Register registers the screener refresh task.
func (s *Scheduler) Register(screenerCron string) error {
	if _, err := s.Cron.AddFunc(screenerCron, s.refreshTask); err != nil {
		return fmt.Errorf("register screener task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (startup seeding / manual
// trigger).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

// Current returns the latest snapshot.
func (s *Scheduler) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running screener refresh")

	suggestions := s.Resolver.ScreenWatchlist(s.Ctx)
	gainer := s.Resolver.TopGainer(s.Ctx)

	s.mu.Lock()
	s.snap = Snapshot{
		Suggestions: suggestions,
		TopGainer:   gainer,
		RefreshedAt: time.Now().UTC(),
	}
	s.mu.Unlock()

	log.Printf("[INFO] screener refresh done: %d suggestions, top gainer %s", len(suggestions), gainer)
}
