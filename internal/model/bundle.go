package model

// NewsItem is one headline from the provider's news digest. Source
// ordering is preserved as returned.
type NewsItem struct {
	ID          string `json:"uuid"`
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Link        string `json:"link"`
	PublishedAt int64  `json:"providerPublishTime"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// Recommendation is the analyst consensus snapshot for a symbol.
// Mean runs 1.0 (strong buy) to 5.0 (strong sell).
type Recommendation struct {
	Mean            float64 `json:"recommendationMean"`
	Key             string  `json:"recommendationKey"`
	TargetMeanPrice float64 `json:"targetMeanPrice"`
	AnalystCount    int     `json:"numberOfAnalystOpinions"`
}

// StockBundle is the aggregate returned for a resolved ticker. Symbol is
// the canonical symbol the data was fetched for, which may differ from
// the user's input when the search fallback kicked in. Recommendation is
// nil when the provider has no analyst coverage.
type StockBundle struct {
	Symbol         string          `json:"symbol"`
	Quote          Quote           `json:"quote"`
	History        []HistoryPoint  `json:"history"`
	News           []NewsItem      `json:"news"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

// SymbolMatch is one row of a symbol search.
type SymbolMatch struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Exchange  string `json:"exch"`
	QuoteType string `json:"type"`
}

// Suggestion is a transient screener result; never persisted.
type Suggestion struct {
	Symbol            string  `json:"symbol"`
	ShortName         string  `json:"shortName"`
	Price             float64 `json:"regularMarketPrice"`
	ChangePercent     float64 `json:"regularMarketChangePercent"`
	RecommendationKey string  `json:"recommendationKey"`
}
