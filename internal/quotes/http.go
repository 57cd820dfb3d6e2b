package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Default upstream endpoints. The CBR daily feed returns every currency in
// one document; the chart endpoint is queried per symbol.
const (
	DefaultRatesURL  = "https://www.cbr-xml-daily.ru/daily_json.js"
	DefaultChartsURL = "https://query1.finance.yahoo.com/v8/finance/chart"
)

// HTTPProvider fetches market data over HTTP with a bounded per-request
// timeout.
type HTTPProvider struct {
	client    *http.Client
	ratesURL  string
	chartsURL string
}

// NewHTTPProvider builds a provider against the given endpoints. Empty
// URLs select the defaults; a zero timeout defaults to 5 seconds.
func NewHTTPProvider(ratesURL, chartsURL string, timeout time.Duration) *HTTPProvider {
	if ratesURL == "" {
		ratesURL = DefaultRatesURL
	}
	if chartsURL == "" {
		chartsURL = DefaultChartsURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPProvider{
		client:    &http.Client{Timeout: timeout},
		ratesURL:  ratesURL,
		chartsURL: chartsURL,
	}
}

// cbrDocument is the subset of the CBR daily feed we read.
type cbrDocument struct {
	Valute map[string]struct {
		Value float64 `json:"Value"`
	} `json:"Valute"`
}

// ExchangeRates implements Provider using the CBR daily feed.
func (p *HTTPProvider) ExchangeRates(ctx context.Context, currencies []string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.ratesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint returned %s", resp.Status)
	}
	var doc cbrDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}
	out := make(map[string]float64, len(currencies))
	for _, c := range currencies {
		if v, ok := doc.Valute[c]; ok {
			out[c] = v.Value
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("rates feed had none of the requested currencies")
	}
	return out, nil
}

// chartDocument is the subset of the chart API response we read.
type chartDocument struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// StockPrices implements Provider by querying the chart endpoint once per
// symbol. A symbol that fails is logged and skipped; the call only fails
// when nothing could be fetched.
func (p *HTTPProvider) StockPrices(ctx context.Context, symbols []string) (map[string]float64, error) {
	out := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		price, err := p.fetchPrice(ctx, symbol)
		if err != nil {
			slog.WarnContext(ctx, "Stock price fetch failed", "symbol", symbol, "error", err)
			continue
		}
		out[symbol] = price
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no stock prices could be fetched")
	}
	return out, nil
}

func (p *HTTPProvider) fetchPrice(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/%s", p.chartsURL, url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build chart request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch chart: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("chart endpoint returned %s", resp.Status)
	}
	var doc chartDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode chart: %w", err)
	}
	if len(doc.Chart.Result) == 0 {
		return 0, fmt.Errorf("chart response had no result")
	}
	return doc.Chart.Result[0].Meta.RegularMarketPrice, nil
}
