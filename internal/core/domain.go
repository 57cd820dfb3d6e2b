package core

import (
	"strings"
	"time"
)

// Canonical category labels used across the analytics.
const (
	CategoryUncategorized = "Без категории"
	CategoryTransfers     = "Переводы"
	CategoryCash          = "Наличные"
	CategoryOther         = "Остальное"
)

type (
	// Money is a signed amount in minor currency units (kopecks).
	Money struct {
		Cents int64
	}

	// Transaction is one normalized bank-card operation.
	//
	// Sign convention: a positive Amount is a spend, a negative Amount is an
	// income. Statement exports use the opposite sign; Normalize flips it
	// exactly once at load time, so everything downstream can rely on it.
	Transaction struct {
		OperationDate time.Time `json:"operation_date"`
		PaymentDate   time.Time `json:"payment_date"` // optional, zero when absent
		Card          string    `json:"card"`         // full card number, only the last 4 are significant
		Amount        Money     `json:"amount"`
		PaymentAmount Money     `json:"payment_amount"`
		Currency      string    `json:"currency"`
		Category      string    `json:"category"`
		MCC           int       `json:"mcc,omitempty"`
		Description   string    `json:"description"`
		Cashback      Money     `json:"cashback"`
		Roundup       Money     `json:"roundup"` // round-up increment attributed to the piggybank
	}
)

// Normalize applies the one-time default substitution for a record coming
// from an external source: the export sign convention (spend negative) is
// flipped to the canonical one, a missing category becomes
// CategoryUncategorized and free-text fields are trimmed.
func Normalize(t Transaction) Transaction {
	t.Amount.Cents = -t.Amount.Cents
	t.PaymentAmount.Cents = -t.PaymentAmount.Cents
	t.Category = strings.TrimSpace(t.Category)
	if t.Category == "" {
		t.Category = CategoryUncategorized
	}
	t.Card = strings.TrimSpace(t.Card)
	t.Currency = strings.TrimSpace(t.Currency)
	t.Description = strings.TrimSpace(t.Description)
	if t.Cashback.Cents < 0 {
		t.Cashback = Money{}
	}
	if t.Roundup.Cents < 0 {
		t.Roundup = Money{}
	}
	return t
}

// IsSpend reports whether the record is an expense under the canonical sign
// convention. Zero amounts count as neither spend nor income.
func (t Transaction) IsSpend() bool {
	return t.Amount.Cents > 0
}

// IsIncome reports whether the record is an income.
func (t Transaction) IsIncome() bool {
	return t.Amount.Cents < 0
}

// HasOperationDate reports whether the operation date parsed to a valid
// timestamp. Records without one are skipped by date-bucketed aggregations.
func (t Transaction) HasOperationDate() bool {
	return !t.OperationDate.IsZero()
}

// LastFour returns the grouping key for card aggregations: the last four
// characters of the card identifier, or "" when the card is unknown.
func (t Transaction) LastFour() string {
	card := strings.TrimSpace(t.Card)
	if card == "" {
		return ""
	}
	runes := []rune(card)
	if len(runes) <= 4 {
		return card
	}
	return string(runes[len(runes)-4:])
}

// ShortDescription returns the description truncated to at most n runes,
// for compact rendering of top-transaction entries.
func (t Transaction) ShortDescription(n int) string {
	runes := []rune(t.Description)
	if len(runes) <= n {
		return t.Description
	}
	return string(runes[:n])
}

// InMonth reports whether the operation date falls in the given year+month.
func (t Transaction) InMonth(year int, month time.Month) bool {
	if !t.HasOperationDate() {
		return false
	}
	return t.OperationDate.Year() == year && t.OperationDate.Month() == month
}
