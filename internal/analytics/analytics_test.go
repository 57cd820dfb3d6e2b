package analytics

import (
	"testing"

	"vypiska/internal/core"
)

func tx(cents int64, category string) core.Transaction {
	return core.Transaction{
		Amount:   core.Money{Cents: cents},
		Category: category,
	}
}

func TestAnalyzeExpensesScenario(t *testing.T) {
	// Spend 1000 + 500, one income record which must be excluded.
	records := []core.Transaction{
		tx(100000, "Супермаркеты"),
		tx(50000, "Транспорт"),
		tx(-200000, "Зарплата"),
	}
	got := AnalyzeExpenses(records)
	if got.Total.Cents != 150000 {
		t.Fatalf("expected total 150000, got %d", got.Total.Cents)
	}
	if len(got.MainCategories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got.MainCategories))
	}
	if got.MainCategories[0].Name != "Супермаркеты" || got.MainCategories[0].Percent != 66.67 {
		t.Fatalf("unexpected leader: %+v", got.MainCategories[0])
	}
	if got.Other != nil {
		t.Fatalf("no remainder expected, got %+v", got.Other)
	}
}

func TestAnalyzeExpensesOther(t *testing.T) {
	records := make([]core.Transaction, 0, 10)
	for i, cents := range []int64{1000, 500, 300, 200, 150, 100, 80, 60, 40, 20} {
		records = append(records, tx(cents*100, string(rune('А'+i))))
	}
	got := AnalyzeExpenses(records)
	if len(got.MainCategories) != 7 {
		t.Fatalf("expected 7 main categories, got %d", len(got.MainCategories))
	}
	if got.Other == nil {
		t.Fatalf("expected a folded remainder")
	}
	if got.Other.Name != core.CategoryOther || got.Other.Amount.Cents != 12000 {
		t.Fatalf("unexpected other entry: %+v", got.Other)
	}

	// Percentages including other sum to ~100.
	sum := got.Other.Percent
	for _, ct := range got.MainCategories {
		sum += ct.Percent
	}
	if sum < 99.9 || sum > 100.1 {
		t.Fatalf("percentages must sum to ~100, got %v", sum)
	}
}

func TestAnalyzeExpensesTransfersAndCash(t *testing.T) {
	records := []core.Transaction{
		tx(10000, "Переводы"),
		tx(30000, "Наличные"),
		tx(5000, "Супермаркеты"),
	}
	got := AnalyzeExpenses(records)
	if len(got.TransfersAndCash) != 2 {
		t.Fatalf("expected transfers and cash, got %+v", got.TransfersAndCash)
	}
	if got.TransfersAndCash[0].Name != core.CategoryCash {
		t.Fatalf("expected cash first (larger amount), got %+v", got.TransfersAndCash)
	}
}

func TestAnalyzeExpensesEmpty(t *testing.T) {
	got := AnalyzeExpenses(nil)
	if got.Total.Cents != 0 {
		t.Fatalf("expected zero total, got %d", got.Total.Cents)
	}
	if got.MainCategories == nil || len(got.MainCategories) != 0 {
		t.Fatalf("expected empty main categories, got %+v", got.MainCategories)
	}
	if got.Other != nil {
		t.Fatalf("other must be absent, got %+v", got.Other)
	}
	if got.TransfersAndCash == nil || len(got.TransfersAndCash) != 0 {
		t.Fatalf("expected empty transfers list, got %+v", got.TransfersAndCash)
	}
}

func TestAnalyzeIncomesNegativeTier(t *testing.T) {
	records := []core.Transaction{
		tx(100000, "Супермаркеты"),
		tx(-200000, "Зарплата"),
	}
	got := AnalyzeIncomes(records)
	if got.Total.Cents != 200000 {
		t.Fatalf("expected income 200000, got %d", got.Total.Cents)
	}
	if len(got.MainCategories) != 1 || got.MainCategories[0].Name != "Зарплата" {
		t.Fatalf("unexpected categories: %+v", got.MainCategories)
	}
	if got.MainCategories[0].Percent != 100 {
		t.Fatalf("single category must be 100%%, got %v", got.MainCategories[0].Percent)
	}
}

func TestAnalyzeIncomesKeywordFallback(t *testing.T) {
	// No negative amounts; positive records with income-like categories.
	records := []core.Transaction{
		tx(100000, "Пополнение счета"),
		tx(50000, "Возврат товара"),
		tx(30000, "Супермаркеты"), // not income-like
	}
	got := AnalyzeIncomes(records)
	if got.Total.Cents != 150000 {
		t.Fatalf("expected fallback income 150000, got %d", got.Total.Cents)
	}
	if len(got.MainCategories) != 2 {
		t.Fatalf("expected 2 income categories, got %+v", got.MainCategories)
	}
}

func TestAnalyzeIncomesTiersNeverMerge(t *testing.T) {
	// One negative record: tier 1 wins, keyword-positive records ignored.
	records := []core.Transaction{
		tx(-10000, "Зарплата"),
		tx(100000, "Пополнение счета"),
	}
	got := AnalyzeIncomes(records)
	if got.Total.Cents != 10000 {
		t.Fatalf("tier 1 only: expected 10000, got %d", got.Total.Cents)
	}
}

func TestGreetingBands(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{5, GreetingMorning},
		{11, GreetingMorning},
		{12, GreetingAfternoon},
		{16, GreetingAfternoon},
		{17, GreetingEvening},
		{22, GreetingEvening},
		{23, GreetingNight},
		{3, GreetingNight},
	}
	for _, tc := range cases {
		if got := Greeting(tc.hour); got != tc.want {
			t.Fatalf("hour %d: expected %q, got %q", tc.hour, tc.want, got)
		}
	}
}
