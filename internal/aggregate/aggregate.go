// Package aggregate contains the pure reduction functions over a
// transaction collection: category, weekday, workday and card totals,
// top-N rankings, cashback sums and the investment round-up.
//
// Every function tolerates an empty input and returns a freshly built
// result; the input slice is never mutated. There is no error channel:
// records that cannot participate in a given view (no parsable date, no
// card) are skipped, not reported.
package aggregate

import (
	"math"
	"sort"
	"strings"
	"time"

	"vypiska/internal/core"
)

// AmountSelector picks which monetary field of a record an aggregation
// sums over.
type AmountSelector func(core.Transaction) core.Money

// Filter decides whether a record participates in an aggregation.
type Filter func(core.Transaction) bool

var (
	// ByOperationAmount selects the operation amount.
	ByOperationAmount AmountSelector = func(t core.Transaction) core.Money { return t.Amount }

	// ByPaymentAmount selects the payment amount.
	ByPaymentAmount AmountSelector = func(t core.Transaction) core.Money { return t.PaymentAmount }

	// SpendOnly keeps expense records.
	SpendOnly Filter = core.Transaction.IsSpend

	// IncomeOnly keeps income records.
	IncomeOnly Filter = core.Transaction.IsIncome

	// Any keeps every record.
	Any Filter = func(core.Transaction) bool { return true }
)

func label(category string) string {
	if strings.TrimSpace(category) == "" {
		return core.CategoryUncategorized
	}
	return category
}

// SumByCategory applies keep, groups the surviving records by category and
// sums the selected amount. The result is ordered by descending total;
// ties keep the first-encountered category first.
func SumByCategory(records []core.Transaction, sel AmountSelector, keep Filter) []core.CategoryTotal {
	index := make(map[string]int)
	totals := make([]core.CategoryTotal, 0)
	for _, t := range records {
		if !keep(t) {
			continue
		}
		cat := label(t.Category)
		i, ok := index[cat]
		if !ok {
			i = len(totals)
			index[cat] = i
			totals = append(totals, core.CategoryTotal{Name: cat})
		}
		totals[i].Amount = totals[i].Amount.Add(sel(t))
		totals[i].Count++
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount.Cents > totals[j].Amount.Cents
	})
	return totals
}

// TopNCategories splits ordered category totals into the n largest entries
// and the sum of everything beyond rank n. The tail is nil when there is
// no remainder at all, which is distinct from a remainder of exactly zero.
func TopNCategories(totals []core.CategoryTotal, n int) ([]core.CategoryTotal, *core.Money) {
	if n < 0 {
		n = 0
	}
	if len(totals) <= n {
		head := append([]core.CategoryTotal(nil), totals...)
		return head, nil
	}
	head := append([]core.CategoryTotal(nil), totals[:n]...)
	tail := core.Money{}
	for _, ct := range totals[n:] {
		tail = tail.Add(ct.Amount)
	}
	return head, &tail
}

// PercentageOf returns part/whole as a percentage rounded to two decimals.
// A zero whole yields 0 rather than a division fault.
func PercentageOf(part, whole core.Money) float64 {
	if whole.Cents == 0 {
		return 0
	}
	return core.Round2(float64(part.Cents) / float64(whole.Cents) * 100)
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayTotals buckets records by ISO weekday. All seven buckets are
// emitted Monday through Sunday even when empty; records without a valid
// operation date are skipped.
func WeekdayTotals(records []core.Transaction, sel AmountSelector, keep Filter) []core.WeekdayBucket {
	buckets := make([]core.WeekdayBucket, len(weekdayOrder))
	index := make(map[time.Weekday]int, len(weekdayOrder))
	for i, wd := range weekdayOrder {
		buckets[i] = core.WeekdayBucket{Day: wd.String()}
		index[wd] = i
	}
	for _, t := range records {
		if !t.HasOperationDate() || !keep(t) {
			continue
		}
		i := index[t.OperationDate.Weekday()]
		buckets[i].Amount = buckets[i].Amount.Add(sel(t))
		buckets[i].Count++
	}
	return buckets
}

// Bucket labels for the workday/weekend split.
const (
	DayTypeWorkday = "Рабочий день"
	DayTypeWeekend = "Выходной"
)

// WorkdayWeekendTotals splits records into workday (Mon-Fri) and weekend
// (Sat-Sun) buckets. Both buckets are always emitted.
func WorkdayWeekendTotals(records []core.Transaction, sel AmountSelector, keep Filter) []core.DayTypeBucket {
	buckets := []core.DayTypeBucket{
		{Type: DayTypeWorkday},
		{Type: DayTypeWeekend},
	}
	for _, t := range records {
		if !t.HasOperationDate() || !keep(t) {
			continue
		}
		i := 0
		if wd := t.OperationDate.Weekday(); wd == time.Saturday || wd == time.Sunday {
			i = 1
		}
		buckets[i].Amount = buckets[i].Amount.Add(sel(t))
		buckets[i].Count++
	}
	return buckets
}

// CardTotals groups spend records by the last four digits of the card,
// summing the spent amount and the recorded cashback, and adds the
// synthetic bonus of 1 unit per 100 units spent. Records without a card
// are skipped. Cards appear in first-encounter order.
func CardTotals(records []core.Transaction) []core.CardSummary {
	index := make(map[string]int)
	cards := make([]core.CardSummary, 0)
	for _, t := range records {
		last := t.LastFour()
		if last == "" {
			continue
		}
		i, ok := index[last]
		if !ok {
			i = len(cards)
			index[last] = i
			cards = append(cards, core.CardSummary{LastFour: last})
		}
		if t.IsSpend() {
			cards[i].TotalSpent = cards[i].TotalSpent.Add(t.Amount)
		}
		cards[i].Cashback = cards[i].Cashback.Add(t.Cashback)
	}
	for i := range cards {
		cards[i].Bonus = core.Money{Cents: cards[i].TotalSpent.Cents / 100}
		cards[i].TotalCashback = cards[i].Cashback.Add(cards[i].Bonus)
	}
	return cards
}

// TopTransactions returns the n records with the largest selected amount,
// in descending order with ties kept in original order. Descriptions are
// truncated to 50 runes and dates reduced to yyyy-mm-dd.
func TopTransactions(records []core.Transaction, n int, sel AmountSelector) []core.TopTransaction {
	if n <= 0 {
		return []core.TopTransaction{}
	}
	sorted := append([]core.Transaction(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sel(sorted[i]).Cents > sel(sorted[j]).Cents
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]core.TopTransaction, 0, len(sorted))
	for _, t := range sorted {
		date := ""
		if t.HasOperationDate() {
			date = t.OperationDate.Format("2006-01-02")
		}
		out = append(out, core.TopTransaction{
			Date:        date,
			Amount:      sel(t),
			Category:    label(t.Category),
			Description: t.ShortDescription(50),
		})
	}
	return out
}

// CashbackByCategory sums the recorded cashback per category, counting
// only records with a positive cashback, sorted descending.
func CashbackByCategory(records []core.Transaction) []core.CategoryCashback {
	index := make(map[string]int)
	out := make([]core.CategoryCashback, 0)
	for _, t := range records {
		if t.Cashback.Cents <= 0 {
			continue
		}
		cat := label(t.Category)
		i, ok := index[cat]
		if !ok {
			i = len(out)
			index[cat] = i
			out = append(out, core.CategoryCashback{Name: cat})
		}
		out[i].Cashback = out[i].Cashback.Add(t.Cashback)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Cashback.Cents > out[j].Cashback.Cents
	})
	return out
}

// ProfitableCategories projects the hypothetical cashback per category for
// one month: the absolute operation amounts are summed and multiplied by
// the assumed flat rate (e.g. 0.05). This is a projection, not the
// recorded cashback.
func ProfitableCategories(records []core.Transaction, year int, month time.Month, rate float64) []core.CategoryCashback {
	if rate < 0 {
		rate = 0
	}
	index := make(map[string]int)
	sums := make([]core.CategoryCashback, 0)
	for _, t := range records {
		if !t.InMonth(year, month) {
			continue
		}
		cat := label(t.Category)
		i, ok := index[cat]
		if !ok {
			i = len(sums)
			index[cat] = i
			sums = append(sums, core.CategoryCashback{Name: cat})
		}
		sums[i].Cashback = sums[i].Cashback.Add(t.Amount.Abs())
	}
	for i := range sums {
		sums[i].Cashback = core.Money{Cents: int64(math.Round(float64(sums[i].Cashback.Cents) * rate))}
	}
	sort.SliceStable(sums, func(i, j int) bool {
		return sums[i].Cashback.Cents > sums[j].Cashback.Cents
	})
	return sums
}

// InvestmentRoundup accumulates the piggybank contribution for the given
// month: each spend amount is rounded up to the next multiple of step and
// the difference is collected. An amount already on a multiple contributes
// zero, as does a non-positive step.
func InvestmentRoundup(records []core.Transaction, year int, month time.Month, step core.Money) core.Money {
	if step.Cents <= 0 {
		return core.Money{}
	}
	total := core.Money{}
	for _, t := range records {
		if !t.IsSpend() || !t.InMonth(year, month) {
			continue
		}
		amount := t.Amount.Abs().Cents
		if rem := amount % step.Cents; rem != 0 {
			total.Cents += step.Cents - rem
		}
	}
	return total
}
