package core

// Derived value objects produced by the aggregators. All of them are
// computed from a record collection on every call, never stored.

// CategoryTotal is an amount aggregated under one category label.
type CategoryTotal struct {
	Name    string  `json:"category"`
	Amount  Money   `json:"amount"`
	Count   int     `json:"count,omitempty"`
	Percent float64 `json:"percentage,omitempty"`
}

// WeekdayBucket is the spend total for one ISO weekday. All seven buckets
// are always emitted, Monday first.
type WeekdayBucket struct {
	Day    string `json:"day"`
	Amount Money  `json:"amount"`
	Count  int    `json:"count"`
}

// DayTypeBucket splits spending into workdays and weekends.
type DayTypeBucket struct {
	Type   string `json:"category"`
	Amount Money  `json:"amount"`
	Count  int    `json:"count"`
}

// CardSummary is the per-card aggregate keyed by the last four digits.
// Bonus is the synthetic cashback of 1 unit per 100 units spent;
// TotalCashback combines it with the recorded cashback.
type CardSummary struct {
	LastFour      string `json:"last_digits"`
	TotalSpent    Money  `json:"total_spent"`
	Cashback      Money  `json:"cashback"`
	Bonus         Money  `json:"bonus"`
	TotalCashback Money  `json:"total_cashback"`
}

// TopTransaction is one entry of a top-N ranking, with the description
// truncated for display and the date reduced to yyyy-mm-dd.
type TopTransaction struct {
	Date        string `json:"date"`
	Amount      Money  `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// CategoryCashback is the recorded or projected cashback for one category.
type CategoryCashback struct {
	Name     string `json:"category"`
	Cashback Money  `json:"cashback"`
}
