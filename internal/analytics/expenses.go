// Package analytics composes the classifiers and aggregators into the
// structured payloads consumed by the presentation layer. Every function
// here is a stateless pure computation over its inputs; external
// collaborators (quote providers) are injected, never imported ambiently.
package analytics

import (
	"vypiska/internal/aggregate"
	"vypiska/internal/core"
)

// Number of named categories surfaced before folding into "Остальное".
const mainCategoryLimit = 7

// ExpenseSummary is the result of AnalyzeExpenses. Other is nil when there
// is no remainder beyond the main categories — absent, not zero.
type ExpenseSummary struct {
	Total            core.Money           `json:"total"`
	MainCategories   []core.CategoryTotal `json:"main_categories"`
	Other            *core.CategoryTotal  `json:"other_category,omitempty"`
	TransfersAndCash []core.CategoryTotal `json:"transfers_and_cash"`
}

// AnalyzeExpenses builds the spending breakdown: per-category totals with
// the top seven surfaced individually, the remainder folded into a single
// synthetic entry, and the transfers/cash categories listed separately.
// An empty collection yields the canonical empty result.
func AnalyzeExpenses(records []core.Transaction) ExpenseSummary {
	totals := aggregate.SumByCategory(records, aggregate.ByOperationAmount, aggregate.SpendOnly)

	total := core.Money{}
	for _, ct := range totals {
		total = total.Add(ct.Amount)
	}

	head, tail := aggregate.TopNCategories(totals, mainCategoryLimit)
	for i := range head {
		head[i].Percent = aggregate.PercentageOf(head[i].Amount, total)
	}

	var other *core.CategoryTotal
	if tail != nil {
		other = &core.CategoryTotal{
			Name:    core.CategoryOther,
			Amount:  *tail,
			Percent: aggregate.PercentageOf(*tail, total),
		}
	}

	// Transfers and cash surface separately; totals are already ordered by
	// descending amount, so collecting preserves that order.
	transfersCash := make([]core.CategoryTotal, 0, 2)
	for _, ct := range totals {
		if ct.Name == core.CategoryTransfers || ct.Name == core.CategoryCash {
			transfersCash = append(transfersCash, ct)
		}
	}

	return ExpenseSummary{
		Total:            total,
		MainCategories:   head,
		Other:            other,
		TransfersAndCash: transfersCash,
	}
}
