// Package reports builds the persisted spending reports: per-category
// monthly totals, weekday totals and workday/weekend totals. Builders
// only compute; persistence is a separate, explicit step through Writer.
package reports

import (
	"sort"
	"time"

	"vypiska/internal/aggregate"
	"vypiska/internal/core"
)

// Report kinds, used as archive keys and file name prefixes.
const (
	KindCategory = "report_spending_by_category"
	KindWeekday  = "report_spending_by_weekday"
	KindWorkday  = "report_spending_by_workday"
)

// MonthTotal is one calendar month of spending within a category.
type MonthTotal struct {
	Month  string     `json:"month"`
	Amount core.Money `json:"amount"`
	Count  int        `json:"count"`
}

// CategoryReport is the monthly spending breakdown of one category.
type CategoryReport struct {
	Category    string       `json:"category"`
	Months      []MonthTotal `json:"months"`
	Total       core.Money   `json:"total"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// WeekdayReport is total spending per day of week, Monday first.
type WeekdayReport struct {
	Days        []core.WeekdayBucket `json:"days"`
	Total       core.Money           `json:"total"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// WorkdayReport splits spending between working days and weekends.
type WorkdayReport struct {
	Categories  []core.DayTypeBucket `json:"categories"`
	Total       core.Money           `json:"total"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// SpendingByCategory groups the category's spending by calendar month,
// months in ascending order. Records without an operation date are
// skipped.
func SpendingByCategory(records []core.Transaction, category string, now time.Time) CategoryReport {
	type bucket struct {
		cents int64
		count int
	}
	months := make(map[string]*bucket)
	var total int64
	for _, t := range records {
		if !t.IsSpend() || !t.HasOperationDate() || t.Category != category {
			continue
		}
		key := t.OperationDate.Format("2006-01")
		b, ok := months[key]
		if !ok {
			b = &bucket{}
			months[key] = b
		}
		b.cents += t.Amount.Cents
		b.count++
		total += t.Amount.Cents
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthTotal{
			Month:  k,
			Amount: core.Money{Cents: months[k].cents},
			Count:  months[k].count,
		})
	}
	return CategoryReport{
		Category:    category,
		Months:      out,
		Total:       core.Money{Cents: total},
		GeneratedAt: now,
	}
}

// SpendingByWeekday totals spending per day of week. All seven days are
// always present, Monday through Sunday.
func SpendingByWeekday(records []core.Transaction, now time.Time) WeekdayReport {
	days := aggregate.WeekdayTotals(records, aggregate.ByOperationAmount, aggregate.SpendOnly)
	var total int64
	for _, d := range days {
		total += d.Amount.Cents
	}
	return WeekdayReport{
		Days:        days,
		Total:       core.Money{Cents: total},
		GeneratedAt: now,
	}
}

// SpendingByWorkday totals spending on working days versus weekends.
// Both buckets are always present.
func SpendingByWorkday(records []core.Transaction, now time.Time) WorkdayReport {
	categories := aggregate.WorkdayWeekendTotals(records, aggregate.ByOperationAmount, aggregate.SpendOnly)
	var total int64
	for _, c := range categories {
		total += c.Amount.Cents
	}
	return WorkdayReport{
		Categories:  categories,
		Total:       core.Money{Cents: total},
		GeneratedAt: now,
	}
}
