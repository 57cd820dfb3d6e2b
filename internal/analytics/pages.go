package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vypiska/internal/aggregate"
	"vypiska/internal/core"
	"vypiska/internal/quotes"
)

// Payload status markers. Every page payload carries one; a page build
// never lets an error escape to the caller.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// HomePage is the composed dashboard payload.
type HomePage struct {
	Page            string                `json:"page"`
	Greeting        string                `json:"greeting"`
	Cards           []core.CardSummary    `json:"cards"`
	TopTransactions []core.TopTransaction `json:"top_transactions"`
	ExchangeRates   map[string]float64    `json:"exchange_rates"`
	StockPrices     map[string]float64    `json:"stock_prices"`
	Status          string                `json:"status"`
	Error           string                `json:"error,omitempty"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// EventsPage is the spending/income overview payload.
type EventsPage struct {
	Page          string             `json:"page"`
	Period        string             `json:"period"`
	Expenses      ExpenseSummary     `json:"expenses"`
	Incomes       IncomeSummary      `json:"incomes"`
	ExchangeRates map[string]float64 `json:"exchange_rates"`
	StockPrices   map[string]float64 `json:"stock_prices"`
	Status        string             `json:"status"`
	Error         string             `json:"error,omitempty"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// PageBuilder assembles page payloads from a record collection and the
// injected quote provider. It holds no state between calls.
type PageBuilder struct {
	provider   quotes.Provider
	currencies []string
	stocks     []string
	timeout    time.Duration
	now        func() time.Time
}

// NewPageBuilder wires a builder with its collaborators. The provider may
// be nil, in which case the fallback market tables are used.
func NewPageBuilder(provider quotes.Provider, currencies, stocks []string, timeout time.Duration) *PageBuilder {
	return &PageBuilder{
		provider:   provider,
		currencies: currencies,
		stocks:     stocks,
		timeout:    timeout,
		now:        time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (b *PageBuilder) WithClock(now func() time.Time) *PageBuilder {
	b.now = now
	return b
}

// At returns a copy of the builder whose clock is pinned to t, so one
// request can be rendered as of a reference datetime without touching
// the shared builder.
func (b *PageBuilder) At(t time.Time) *PageBuilder {
	pinned := *b
	pinned.now = func() time.Time { return t }
	return &pinned
}

// HomePage builds the dashboard payload: greeting, card summaries, top 5
// transactions by payment amount and market data. It succeeds on empty
// input; an unexpected failure is converted into a status:error payload.
func (b *PageBuilder) HomePage(ctx context.Context, records []core.Transaction) (page HomePage) {
	now := b.now()
	page = HomePage{Page: "home", Status: StatusSuccess, GeneratedAt: now}

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "Home page build failed", "panic", r)
			page = HomePage{
				Page:        "home",
				Status:      StatusError,
				Error:       fmt.Sprint(r),
				GeneratedAt: now,
			}
		}
	}()

	page.Greeting = Greeting(now.Hour())
	page.Cards = aggregate.CardTotals(records)
	page.TopTransactions = aggregate.TopTransactions(records, 5, aggregate.ByPaymentAmount)

	market := quotes.FetchMarket(ctx, b.provider, b.currencies, b.stocks, b.timeout)
	page.ExchangeRates = market.ExchangeRates
	page.StockPrices = market.StockPrices
	return page
}

var periodNames = map[string]string{
	"D": "день",
	"W": "неделя",
	"M": "месяц",
}

// PeriodName maps a period code (D, W, M) to its display label; unknown
// codes default to the month label.
func PeriodName(period string) string {
	if name, ok := periodNames[period]; ok {
		return name
	}
	return periodNames["M"]
}

// EventsPage builds the events payload: expense and income analyses plus
// market data. Same degradation contract as HomePage.
func (b *PageBuilder) EventsPage(ctx context.Context, records []core.Transaction, period string) (page EventsPage) {
	now := b.now()
	page = EventsPage{Page: "events", Period: PeriodName(period), Status: StatusSuccess, GeneratedAt: now}

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "Events page build failed", "panic", r)
			page = EventsPage{
				Page:        "events",
				Period:      PeriodName(period),
				Status:      StatusError,
				Error:       fmt.Sprint(r),
				GeneratedAt: now,
			}
		}
	}()

	page.Expenses = AnalyzeExpenses(records)
	page.Incomes = AnalyzeIncomes(records)

	market := quotes.FetchMarket(ctx, b.provider, b.currencies, b.stocks, b.timeout)
	page.ExchangeRates = market.ExchangeRates
	page.StockPrices = market.StockPrices
	return page
}
