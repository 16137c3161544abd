package model

// Quote is a point-in-time snapshot of a tradable instrument.
// It is replaced wholesale by the next fetch, never merged in place.
type Quote struct {
	Symbol        string  `json:"symbol"`
	ShortName     string  `json:"shortName"`
	Price         float64 `json:"regularMarketPrice"`
	Change        float64 `json:"regularMarketChange"`
	ChangePercent float64 `json:"regularMarketChangePercent"`
	PreviousClose float64 `json:"regularMarketPreviousClose"`
	Open          float64 `json:"regularMarketOpen"`
	DayHigh       float64 `json:"regularMarketDayHigh"`
	DayLow        float64 `json:"regularMarketDayLow"`
	Volume        float64 `json:"regularMarketVolume"`
}

// BatchQuote is the thin row returned by batch quote lookups; enough for
// portfolio revaluation and the top-gainer scan.
type BatchQuote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"regularMarketPrice"`
	ChangePercent float64 `json:"regularMarketChangePercent"`
}
