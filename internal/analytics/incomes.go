package analytics

import (
	"strings"

	"vypiska/internal/aggregate"
	"vypiska/internal/core"
)

// Category keywords recognized as income when no negative-amount records
// exist (the fallback tier).
var incomeKeywords = []string{
	"пополнение",
	"зачисление",
	"возврат",
	"начисление",
	"доход",
	"зарплата",
}

// IncomeSummary is the result of AnalyzeIncomes.
type IncomeSummary struct {
	Total          core.Money           `json:"total"`
	MainCategories []core.CategoryTotal `json:"main_categories"`
}

func categoryLooksLikeIncome(category string) bool {
	lower := strings.ToLower(category)
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// AnalyzeIncomes detects incomes with a two-tier policy: records with a
// negative canonical amount first; only when none exist, positive-amount
// records whose category matches the income keyword set. The tiers are
// never merged.
func AnalyzeIncomes(records []core.Transaction) IncomeSummary {
	abs := func(t core.Transaction) core.Money { return t.Amount.Abs() }

	totals := aggregate.SumByCategory(records, abs, aggregate.IncomeOnly)
	if len(totals) == 0 {
		byKeyword := func(t core.Transaction) bool {
			return t.IsSpend() && categoryLooksLikeIncome(t.Category)
		}
		totals = aggregate.SumByCategory(records, abs, byKeyword)
	}

	total := core.Money{}
	for _, ct := range totals {
		total = total.Add(ct.Amount)
	}
	for i := range totals {
		totals[i].Percent = aggregate.PercentageOf(totals[i].Amount, total)
	}

	return IncomeSummary{Total: total, MainCategories: totals}
}
