// Package quotes provides the external market-data collaborators used by
// the page builders: currency exchange rates and stock prices.
//
// The provider is injected by the caller; there is no package-level
// singleton. A provider failure never aborts a page build — FetchMarket
// degrades each leg to a documented fallback table so the dashboard always
// renders.
package quotes

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Provider returns reference values for a set of currency codes or ticker
// symbols. Implementations must honor the context deadline.
type Provider interface {
	ExchangeRates(ctx context.Context, currencies []string) (map[string]float64, error)
	StockPrices(ctx context.Context, symbols []string) (map[string]float64, error)
}

// Fallback values substituted when the provider fails, so a market-data
// outage degrades gracefully instead of blanking the dashboard.
var (
	fallbackRates = map[string]float64{
		"USD": 90.5,
		"EUR": 98.2,
		"GBP": 114.3,
	}

	fallbackPrices = map[string]float64{
		"AAPL":  185.2,
		"GOOGL": 142.5,
		"MSFT":  374.5,
		"TSLA":  240.1,
		"AMZN":  154.9,
	}
)

// FallbackRates returns the fallback rate table for the requested
// currencies. Unknown codes are omitted.
func FallbackRates(currencies []string) map[string]float64 {
	out := make(map[string]float64, len(currencies))
	for _, c := range currencies {
		if v, ok := fallbackRates[c]; ok {
			out[c] = v
		}
	}
	return out
}

// FallbackPrices returns the fallback price table for the requested
// symbols. Unknown symbols are omitted.
func FallbackPrices(symbols []string) map[string]float64 {
	out := make(map[string]float64, len(symbols))
	for _, s := range symbols {
		if v, ok := fallbackPrices[s]; ok {
			out[s] = v
		}
	}
	return out
}

// Market is the combined market-data block embedded into page payloads.
type Market struct {
	ExchangeRates map[string]float64 `json:"exchange_rates"`
	StockPrices   map[string]float64 `json:"stock_prices"`
}

// FetchMarket retrieves rates and prices concurrently with a bounded
// timeout. Each leg independently falls back to the documented defaults on
// failure; the call itself never fails.
func FetchMarket(ctx context.Context, p Provider, currencies, symbols []string, timeout time.Duration) Market {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	m := Market{
		ExchangeRates: FallbackRates(currencies),
		StockPrices:   FallbackPrices(symbols),
	}
	if p == nil {
		return m
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rates, err := p.ExchangeRates(gctx, currencies)
		if err == nil && len(rates) > 0 {
			m.ExchangeRates = rates
		}
		return nil // fallback already in place
	})
	g.Go(func() error {
		prices, err := p.StockPrices(gctx, symbols)
		if err == nil && len(prices) > 0 {
			m.StockPrices = prices
		}
		return nil
	})
	_ = g.Wait()
	return m
}
