package resolver

// FallbackSymbol is returned by TopGainer when the watchlist scan cannot
// produce a winner.
const FallbackSymbol = "SPY"

// DefaultWatchlist is the curated screener universe: well-known large
// caps across sectors, wide enough that 20+ buy-rated names usually
// survive the filter.
var DefaultWatchlist = []string{
	"NVDA", "MSFT", "AMZN", "GOOGL", "META", "AMD", "AVGO", "TSLA", "AAPL", "CRM", // tech giants
	"PLTR", "PANW", "CRWD", "UBER", "ABNB", "NOW", "INTU", "QCOM", "TXN", "MU", // tech growth
	"LLY", "UNH", "JNJ", "MRK", "ABBV", "PFE", "ISRG", "VRTX", // healthcare
	"JPM", "BAC", "V", "MA", "GS", "MS", "BLK", // finance
	"WMT", "COST", "HD", "LOW", "MCD", "SBUX", "CMG", "NKE", // consumer
	"CAT", "DE", "GE", "UNP", "HON", // industrial
	"XOM", "CVX", "COP", // energy
}
