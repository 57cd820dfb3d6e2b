package quotes

import "context"

// Static is a fixed-table provider for tests and offline demo runs.
type Static struct {
	Rates  map[string]float64
	Prices map[string]float64
	Err    error
}

// ExchangeRates returns the configured rate table, filtered to the
// requested currencies.
func (s Static) ExchangeRates(_ context.Context, currencies []string) (map[string]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[string]float64, len(currencies))
	for _, c := range currencies {
		if v, ok := s.Rates[c]; ok {
			out[c] = v
		}
	}
	return out, nil
}

// StockPrices returns the configured price table, filtered to the
// requested symbols.
func (s Static) StockPrices(_ context.Context, symbols []string) (map[string]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		if v, ok := s.Prices[sym]; ok {
			out[sym] = v
		}
	}
	return out, nil
}
