package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"stockdash/internal/model"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider implements Provider using the Yahoo Finance public API.
type YahooProvider struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

// NewYahooProvider creates a Yahoo Finance provider.
func NewYahooProvider(proxyURL string, timeout time.Duration) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		BaseURL:   defaultBaseURL,
		UserAgent: "Mozilla/5.0",
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

func (p *YahooProvider) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// yahooChart is the response structure of the v8 chart endpoint.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (p *YahooProvider) Chart(ctx context.Context, symbol string, start, end time.Time, interval string) ([]Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=%s",
		p.BaseURL, url.PathEscape(symbol), start.Unix(), end.Unix(), url.QueryEscape(interval))

	body, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode chart: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no chart data for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote indicators for %s", symbol)
	}
	quote := result.Indicators.Quote[0]
	bars := make([]Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, Bar{
			Timestamp: ts,
			Open:      o,
			High:      h,
			Low:       l,
			Close:     c,
			Volume:    toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp < bars[j].Timestamp })
	return bars, nil
}

// yahooQuoteResponse is the response structure of the v7 quote endpoint.
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string  `json:"symbol"`
			ShortName                  string  `json:"shortName"`
			RegularMarketPrice         float64 `json:"regularMarketPrice"`
			RegularMarketChange        float64 `json:"regularMarketChange"`
			RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
			RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
			RegularMarketOpen          float64 `json:"regularMarketOpen"`
			RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
			RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
			RegularMarketVolume        float64 `json:"regularMarketVolume"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

func (p *YahooProvider) fetchQuotes(ctx context.Context, symbols []string) (*yahooQuoteResponse, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
		p.BaseURL, url.QueryEscape(strings.Join(symbols, ",")))

	body, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var qr yahooQuoteResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("yahoo decode quote: %w", err)
	}
	if qr.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", qr.QuoteResponse.Error.Description)
	}
	return &qr, nil
}

func (p *YahooProvider) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	qr, err := p.fetchQuotes(ctx, []string{symbol})
	if err != nil {
		return nil, err
	}
	if len(qr.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no quote for %s", symbol)
	}
	r := qr.QuoteResponse.Result[0]
	return &model.Quote{
		Symbol:        r.Symbol,
		ShortName:     r.ShortName,
		Price:         r.RegularMarketPrice,
		Change:        r.RegularMarketChange,
		ChangePercent: r.RegularMarketChangePercent,
		PreviousClose: r.RegularMarketPreviousClose,
		Open:          r.RegularMarketOpen,
		DayHigh:       r.RegularMarketDayHigh,
		DayLow:        r.RegularMarketDayLow,
		Volume:        r.RegularMarketVolume,
	}, nil
}

func (p *YahooProvider) BatchQuotes(ctx context.Context, symbols []string) ([]model.BatchQuote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	qr, err := p.fetchQuotes(ctx, symbols)
	if err != nil {
		return nil, err
	}
	out := make([]model.BatchQuote, 0, len(qr.QuoteResponse.Result))
	for _, r := range qr.QuoteResponse.Result {
		out = append(out, model.BatchQuote{
			Symbol:        r.Symbol,
			Price:         r.RegularMarketPrice,
			ChangePercent: r.RegularMarketChangePercent,
		})
	}
	return out, nil
}

// yahooSearch is the response structure of the v1 search endpoint.
type yahooSearch struct {
	Quotes []struct {
		Symbol         string `json:"symbol"`
		ShortName      string `json:"shortname"`
		LongName       string `json:"longname"`
		Exchange       string `json:"exchange"`
		QuoteType      string `json:"quoteType"`
		IsYahooFinance bool   `json:"isYahooFinance"`
	} `json:"quotes"`
	News []struct {
		UUID                string `json:"uuid"`
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
		Thumbnail           *struct {
			Resolutions []struct {
				URL string `json:"url"`
			} `json:"resolutions"`
		} `json:"thumbnail"`
	} `json:"news"`
}

func (p *YahooProvider) Search(ctx context.Context, query string, quotesCount, newsCount int) (*SearchResult, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=%s&newsCount=%s",
		p.BaseURL, url.QueryEscape(query),
		strconv.Itoa(quotesCount), strconv.Itoa(newsCount))

	body, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var sr yahooSearch
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("yahoo decode search: %w", err)
	}

	out := &SearchResult{
		Quotes: make([]SearchQuote, 0, len(sr.Quotes)),
		News:   make([]model.NewsItem, 0, len(sr.News)),
	}
	for _, q := range sr.Quotes {
		out.Quotes = append(out.Quotes, SearchQuote{
			Symbol:     q.Symbol,
			ShortName:  q.ShortName,
			LongName:   q.LongName,
			Exchange:   q.Exchange,
			QuoteType:  q.QuoteType,
			Aggregator: q.IsYahooFinance,
		})
	}
	for _, n := range sr.News {
		item := model.NewsItem{
			ID:          n.UUID,
			Title:       n.Title,
			Publisher:   n.Publisher,
			Link:        n.Link,
			PublishedAt: n.ProviderPublishTime,
		}
		if n.Thumbnail != nil && len(n.Thumbnail.Resolutions) > 0 {
			item.Thumbnail = n.Thumbnail.Resolutions[0].URL
		}
		out.News = append(out.News, item)
	}
	return out, nil
}

// rawValue is Yahoo's {raw, fmt} wrapper used by quoteSummary modules.
type rawValue struct {
	Raw float64 `json:"raw"`
}

// yahooSummary is the response structure of the v10 quoteSummary endpoint.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData *struct {
				RecommendationMean      rawValue `json:"recommendationMean"`
				RecommendationKey       string   `json:"recommendationKey"`
				TargetMeanPrice         rawValue `json:"targetMeanPrice"`
				NumberOfAnalystOpinions rawValue `json:"numberOfAnalystOpinions"`
			} `json:"financialData"`
			Price *struct {
				ShortName                  string   `json:"shortName"`
				RegularMarketPrice         rawValue `json:"regularMarketPrice"`
				RegularMarketChangePercent rawValue `json:"regularMarketChangePercent"`
			} `json:"price"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (p *YahooProvider) QuoteSummary(ctx context.Context, symbol string) (*Summary, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=financialData,price",
		p.BaseURL, url.PathEscape(symbol))

	body, err := p.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var ys yahooSummary
	if err := json.Unmarshal(body, &ys); err != nil {
		return nil, fmt.Errorf("yahoo decode quoteSummary: %w", err)
	}
	if ys.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", ys.QuoteSummary.Error.Description)
	}
	if len(ys.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no summary for %s", symbol)
	}

	r := ys.QuoteSummary.Result[0]
	sum := &Summary{}
	if r.FinancialData != nil && r.FinancialData.RecommendationKey != "" {
		sum.Recommendation = &model.Recommendation{
			Mean:            r.FinancialData.RecommendationMean.Raw,
			Key:             r.FinancialData.RecommendationKey,
			TargetMeanPrice: r.FinancialData.TargetMeanPrice.Raw,
			AnalystCount:    int(r.FinancialData.NumberOfAnalystOpinions.Raw),
		}
	}
	if r.Price != nil {
		sum.ShortName = r.Price.ShortName
		sum.Price = r.Price.RegularMarketPrice.Raw
		sum.ChangePercent = r.Price.RegularMarketChangePercent.Raw
	}
	return sum, nil
}
