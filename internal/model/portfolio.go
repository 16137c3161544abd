package model

import "time"

// Holding is one user-owned portfolio entry. Symbol is the unique key
// within the ledger; adding the same symbol again replaces the entry
// outright, it does not average lots.
type Holding struct {
	Symbol  string  `json:"symbol"`
	Shares  float64 `json:"shares"`
	AvgCost float64 `json:"avgCost"`
}

// HoldingValue is a Holding priced against the latest batch quotes.
// Priced is false when no quote has matched yet; the holding is then
// valued at its own average cost and shows zero gain.
type HoldingValue struct {
	Holding
	Price       float64 `json:"price"`
	Value       float64 `json:"value"`
	Cost        float64 `json:"cost"`
	Gain        float64 `json:"gain"`
	GainPercent float64 `json:"gainPercent"`
	Priced      bool    `json:"priced"`
}

// PortfolioSummary is the full valuation of the ledger.
type PortfolioSummary struct {
	Holdings         []HoldingValue `json:"holdings"`
	TotalValue       float64        `json:"totalValue"`
	TotalCost        float64        `json:"totalCost"`
	TotalGain        float64        `json:"totalGain"`
	TotalGainPercent float64        `json:"totalGainPercent"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}
