package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockdash/internal/cache"
	"stockdash/internal/config"
	"stockdash/internal/ledger"
	"stockdash/internal/provider"
	"stockdash/internal/resolver"
	"stockdash/internal/scheduler"
	"stockdash/internal/server"
	"stockdash/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] stockdash starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init provider
	yp := provider.NewYahooProvider(cfg.Provider.Proxy, time.Duration(cfg.Provider.TimeoutSeconds)*time.Second)
	if cfg.Provider.BaseURL != "" {
		yp.BaseURL = cfg.Provider.BaseURL
	}
	if cfg.Provider.UserAgent != "" {
		yp.UserAgent = cfg.Provider.UserAgent
	}
	log.Printf("[INFO] data source: %s", yp.Name())

	// Init quote cache
	var qc cache.QuoteCache
	if cfg.Cache.Backend == "redis" {
		rc, err := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB,
			time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		if err != nil {
			log.Printf("[WARN] init redis cache failed, using memory: %v", err)
			qc = cache.NewMemoryCache()
		} else {
			qc = rc
			defer rc.Close()
		}
	} else {
		qc = cache.NewMemoryCache()
	}

	// Init holdings store
	var store storage.Store
	if cfg.Storage.Backend == "sqlite" {
		ss, err := storage.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using file store: %v", err)
			store = storage.NewFileStore(cfg.Storage.Path + ".json")
		} else {
			store = ss
			defer ss.Close()
		}
	} else {
		store = storage.NewFileStore(cfg.Storage.Path)
	}

	// Init ledger
	lm, err := ledger.NewManager(store)
	if err != nil {
		log.Fatalf("[FATAL] init ledger: %v", err)
	}

	// Init resolver
	res := resolver.New(yp, qc, cfg.Watchlist)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, res)
	if err := sched.Register(cfg.Schedule.ScreenerCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Seed the screener snapshot so the first page load has data.
	go sched.RunNow()

	// Init HTTP server
	srv := server.NewServer(res, lm, sched)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] stockdash is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] stockdash stopped")
}
