package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchMarketUsesProvider(t *testing.T) {
	p := Static{
		Rates:  map[string]float64{"USD": 91.0, "EUR": 99.0},
		Prices: map[string]float64{"AAPL": 190.0},
	}
	m := FetchMarket(context.Background(), p, []string{"USD", "EUR"}, []string{"AAPL"}, time.Second)
	if m.ExchangeRates["USD"] != 91.0 || m.ExchangeRates["EUR"] != 99.0 {
		t.Fatalf("unexpected rates: %+v", m.ExchangeRates)
	}
	if m.StockPrices["AAPL"] != 190.0 {
		t.Fatalf("unexpected prices: %+v", m.StockPrices)
	}
}

func TestFetchMarketFallsBack(t *testing.T) {
	p := Static{Err: errors.New("network down")}
	m := FetchMarket(context.Background(), p, []string{"USD", "EUR", "GBP"}, []string{"AAPL", "TSLA"}, time.Second)
	if m.ExchangeRates["USD"] != 90.5 || m.ExchangeRates["EUR"] != 98.2 || m.ExchangeRates["GBP"] != 114.3 {
		t.Fatalf("expected fallback rates, got %+v", m.ExchangeRates)
	}
	if m.StockPrices["AAPL"] != 185.2 || m.StockPrices["TSLA"] != 240.1 {
		t.Fatalf("expected fallback prices, got %+v", m.StockPrices)
	}
}

func TestFetchMarketNilProvider(t *testing.T) {
	m := FetchMarket(context.Background(), nil, []string{"USD"}, []string{"MSFT"}, time.Second)
	if m.ExchangeRates["USD"] != 90.5 || m.StockPrices["MSFT"] != 374.5 {
		t.Fatalf("nil provider must use the fallback tables, got %+v", m)
	}
}

func TestHTTPProviderExchangeRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Valute":{"USD":{"Value":90.5},"EUR":{"Value":98.2},"GBP":{"Value":114.3}}}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "", time.Second)
	rates, err := p.ExchangeRates(context.Background(), []string{"USD", "EUR", "JPY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rates["USD"] != 90.5 || rates["EUR"] != 98.2 {
		t.Fatalf("unexpected rates: %+v", rates)
	}
	if _, ok := rates["JPY"]; ok {
		t.Fatalf("currencies absent from the feed must be omitted")
	}
}

func TestHTTPProviderStockPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":185.2}}]}}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider("", srv.URL, time.Second)
	prices, err := p.StockPrices(context.Background(), []string{"AAPL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prices["AAPL"] != 185.2 {
		t.Fatalf("unexpected prices: %+v", prices)
	}
}

func TestHTTPProviderErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, srv.URL, time.Second)
	if _, err := p.ExchangeRates(context.Background(), []string{"USD"}); err == nil {
		t.Fatalf("expected error from failing rates endpoint")
	}
	if _, err := p.StockPrices(context.Background(), []string{"AAPL"}); err == nil {
		t.Fatalf("expected error when no symbol could be fetched")
	}
}
