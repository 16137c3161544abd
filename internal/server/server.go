package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"stockdash/internal/ledger"
	"stockdash/internal/model"
	"stockdash/internal/resolver"
	"stockdash/internal/scheduler"
)

// Server exposes the resolver and the ledger as a JSON API for the
// dashboard frontend.
type Server struct {
	resolver *resolver.Resolver
	ledger   *ledger.Manager
	sched    *scheduler.Scheduler
	router   *mux.Router
}

func NewServer(r *resolver.Resolver, lm *ledger.Manager, sched *scheduler.Scheduler) *Server {
	s := &Server{
		resolver: r,
		ledger:   lm,
		sched:    sched,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/stocks/{ticker}", s.handleStock).Methods(http.MethodGet)
	router.HandleFunc("/api/search", s.handleSearch).Methods(http.MethodGet)
	router.HandleFunc("/api/suggestions", s.handleSuggestions).Methods(http.MethodGet)
	router.HandleFunc("/api/gainer", s.handleGainer).Methods(http.MethodGet)
	router.HandleFunc("/api/quotes", s.handleQuotes).Methods(http.MethodGet)
	router.HandleFunc("/api/holdings", s.handleListHoldings).Methods(http.MethodGet)
	router.HandleFunc("/api/holdings", s.handleCreateHolding).Methods(http.MethodPost)
	router.HandleFunc("/api/holdings/{symbol}", s.handleDeleteHolding).Methods(http.MethodDelete)
	router.HandleFunc("/api/portfolio", s.handlePortfolio).Methods(http.MethodGet)
	router.HandleFunc("/api/portfolio/refresh", s.handleRefreshPortfolio).Methods(http.MethodPost)

	s.router = router
	return s
}

// Handler returns the routed handler wrapped with CORS for the
// client-rendered frontend.
func (s *Server) Handler() http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = "1y"
	}
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = "1d"
	}

	bundle, err := s.resolver.Resolve(r.Context(), ticker, rng, interval)
	if err != nil {
		if errors.Is(err, resolver.ErrNoData) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no data for ticker"})
			return
		}
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	matches, err := s.resolver.SearchSymbols(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		// Search degrades to an empty list, never an error page.
		log.Printf("[WARN] search failed: %v", err)
		writeJSON(w, http.StatusOK, []model.SymbolMatch{})
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	snap := s.sched.Current()
	if snap.RefreshedAt.IsZero() {
		// No scheduled run yet; screen on demand.
		writeJSON(w, http.StatusOK, s.resolver.ScreenWatchlist(r.Context()))
		return
	}
	writeJSON(w, http.StatusOK, snap.Suggestions)
}

func (s *Server) handleGainer(w http.ResponseWriter, r *http.Request) {
	snap := s.sched.Current()
	symbol := snap.TopGainer
	if symbol == "" {
		symbol = s.resolver.TopGainer(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]string{"symbol": symbol})
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	var symbols []string
	for _, part := range strings.Split(r.URL.Query().Get("symbols"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			symbols = append(symbols, part)
		}
	}
	writeJSON(w, http.StatusOK, s.resolver.BatchQuotes(r.Context(), symbols))
}

func (s *Server) handleListHoldings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Holdings())
}

func (s *Server) handleCreateHolding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbol  string  `json:"symbol"`
		Shares  float64 `json:"shares"`
		AvgCost float64 `json:"avgCost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if !s.ledger.AddOrReplace(req.Symbol, req.Shares, req.AvgCost) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid holding payload"})
		return
	}

	s.refreshQuotesIfNeeded(r.Context())
	writeJSON(w, http.StatusCreated, model.Holding{
		Symbol:  strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Shares:  req.Shares,
		AvgCost: req.AvgCost,
	})
}

func (s *Server) handleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	if !s.ledger.Remove(mux.Vars(r)["symbol"]) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "holding not found"})
		return
	}
	s.refreshQuotesIfNeeded(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	s.refreshQuotesIfNeeded(r.Context())
	writeJSON(w, http.StatusOK, s.ledger.Summary())
}

func (s *Server) handleRefreshPortfolio(w http.ResponseWriter, r *http.Request) {
	s.refreshQuotes(r.Context())
	writeJSON(w, http.StatusOK, s.ledger.Summary())
}

// refreshQuotesIfNeeded refetches batch quotes only when the holding
// count moved since the last refresh. Edits that keep the count stable
// serve stale prices until the next count change or a manual refresh.
func (s *Server) refreshQuotesIfNeeded(ctx context.Context) {
	if !s.ledger.NeedsRefresh() {
		return
	}
	s.refreshQuotes(ctx)
}

func (s *Server) refreshQuotes(ctx context.Context) {
	symbols := s.ledger.Symbols()
	if len(symbols) == 0 {
		s.ledger.SetQuotes(nil)
		return
	}
	quotes := s.resolver.BatchQuotes(ctx, symbols)
	if len(quotes) == 0 {
		// Total batch failure: keep whatever quotes we had.
		return
	}
	s.ledger.SetQuotes(quotes)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
