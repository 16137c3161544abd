package ledger

import (
	"log"
	"math"
	"strconv"
	"strings"
	"sync"

	"stockdash/internal/model"
	"stockdash/internal/storage"
)

// Manager owns the portfolio ledger: an ordered list of holdings keyed
// by symbol, persisted through a Store after every mutation, plus the
// latest batch quotes used for valuation.
type Manager struct {
	mu           sync.Mutex
	holdings     []model.Holding
	quotes       map[string]model.BatchQuote
	store        storage.Store
	refreshCount int
}

// NewManager creates a Manager, loading holdings from the store.
func NewManager(store storage.Store) (*Manager, error) {
	holdings, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Manager{
		holdings:     holdings,
		quotes:       make(map[string]model.BatchQuote),
		store:        store,
		refreshCount: -1,
	}, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// AddOrReplace inserts a holding, replacing any existing entry for the
// same symbol outright (no lot averaging). Invalid input is rejected
// without mutating anything.
func (m *Manager) AddOrReplace(symbol string, shares, avgCost float64) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || !positiveFinite(shares) || !positiveFinite(avgCost) {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	h := model.Holding{Symbol: symbol, Shares: shares, AvgCost: avgCost}
	replaced := false
	for i := range m.holdings {
		if m.holdings[i].Symbol == symbol {
			m.holdings[i] = h
			replaced = true
			break
		}
	}
	if !replaced {
		m.holdings = append(m.holdings, h)
	}
	m.save()
	return true
}

// AddOrReplaceText is AddOrReplace for raw user input; values that do
// not parse as positive finite numbers are rejected silently.
func (m *Manager) AddOrReplaceText(symbol, shares, avgCost string) bool {
	sh, err := strconv.ParseFloat(strings.TrimSpace(shares), 64)
	if err != nil {
		return false
	}
	cost, err := strconv.ParseFloat(strings.TrimSpace(avgCost), 64)
	if err != nil {
		return false
	}
	return m.AddOrReplace(symbol, sh, cost)
}

// Remove deletes the holding for symbol if present.
func (m *Manager) Remove(symbol string) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.holdings {
		if m.holdings[i].Symbol == symbol {
			m.holdings = append(m.holdings[:i], m.holdings[i+1:]...)
			m.save()
			return true
		}
	}
	return false
}

// Holdings returns a copy of the ledger in order.
func (m *Manager) Holdings() []model.Holding {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Holding, len(m.holdings))
	copy(out, m.holdings)
	return out
}

// Symbols returns the ledger's symbols in order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.holdings))
	for i, h := range m.holdings {
		out[i] = h.Symbol
	}
	return out
}

// SetQuotes replaces the valuation quotes wholesale and records the
// holding count they were fetched for.
func (m *Manager) SetQuotes(quotes []model.BatchQuote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes = make(map[string]model.BatchQuote, len(quotes))
	for _, q := range quotes {
		m.quotes[strings.ToUpper(q.Symbol)] = q
	}
	m.refreshCount = len(m.holdings)
}

// NeedsRefresh reports whether the holding count has changed since the
// last quote refresh. Edits to an existing holding's shares or cost do
// not trigger a refetch; that staleness is the intended trade-off.
func (m *Manager) NeedsRefresh() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.holdings) != m.refreshCount
}

// save persists under the held lock. Write failures are logged, not
// propagated.
func (m *Manager) save() {
	if err := m.store.Save(m.holdings); err != nil {
		log.Printf("[ERROR] save holdings: %v", err)
	}
}
