package ledger

import (
	"time"

	"stockdash/internal/model"
)

// Summary values every holding against the latest quotes. A holding
// without a matching quote is valued at its own average cost, so it
// shows zero gain instead of an error until the next refresh covers it.
func (m *Manager) Summary() model.PortfolioSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := model.PortfolioSummary{
		Holdings:  make([]model.HoldingValue, 0, len(m.holdings)),
		UpdatedAt: time.Now().UTC(),
	}

	for _, h := range m.holdings {
		hv := model.HoldingValue{Holding: h}
		if q, ok := m.quotes[h.Symbol]; ok {
			hv.Price = q.Price
			hv.Priced = true
		} else {
			hv.Price = h.AvgCost
		}
		hv.Value = hv.Price * h.Shares
		hv.Cost = h.AvgCost * h.Shares
		hv.Gain = hv.Value - hv.Cost
		if hv.Cost > 0 {
			hv.GainPercent = hv.Gain / hv.Cost * 100
		}

		out.TotalValue += hv.Value
		out.TotalCost += hv.Cost
		out.Holdings = append(out.Holdings, hv)
	}

	out.TotalGain = out.TotalValue - out.TotalCost
	if out.TotalCost > 0 {
		out.TotalGainPercent = out.TotalGain / out.TotalCost * 100
	}
	return out
}
