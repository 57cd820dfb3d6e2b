package source

import (
	"strconv"
	"strings"
	"time"

	"vypiska/internal/core"
)

// Column headers of the bank statement export. Adapters map columns by
// header name, not position, so column order in the export is free.
const (
	ColOperationDate = "Дата операции"
	ColPaymentDate   = "Дата платежа"
	ColCard          = "Номер карты"
	ColAmount        = "Сумма операции"
	ColCurrency      = "Валюта операции"
	ColPaymentAmount = "Сумма платежа"
	ColCategory      = "Категория"
	ColMCC           = "MCC"
	ColDescription   = "Описание"
	ColCashback      = "Кэшбэк"
	ColRoundup       = "Округление на «Инвесткопилку»"
)

// Date layouts seen in statement exports, tried in order.
var dateLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate returns the zero time for anything unparseable; such records
// stay in the collection but are skipped by date-bucketed aggregations.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ColumnIndex maps header names to their position in the header row.
// Alternate cashback spellings are folded onto the canonical column.
func ColumnIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "Кешбэк" {
			h = ColCashback
		}
		index[h] = i
	}
	return index
}

func cell(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseRow converts one export row into a normalized transaction. The
// second return value is false when the row carries no usable amount at
// all, which marks filler rows rather than an error.
func ParseRow(row []string, index map[string]int) (core.Transaction, bool) {
	amountCell := cell(row, index, ColAmount)
	amount, ok := core.ParseSignedCents(amountCell)
	if !ok || amountCell == "" {
		return core.Transaction{}, false
	}
	payment, ok := core.ParseSignedCents(cell(row, index, ColPaymentAmount))
	if !ok || payment == 0 {
		payment = amount
	}
	cashback, ok := core.ParseSignedCents(cell(row, index, ColCashback))
	if !ok {
		cashback = 0
	}
	roundup, ok := core.ParseSignedCents(cell(row, index, ColRoundup))
	if !ok {
		roundup = 0
	}
	mcc, _ := strconv.Atoi(cell(row, index, ColMCC))

	t := core.Transaction{
		OperationDate: parseDate(cell(row, index, ColOperationDate)),
		PaymentDate:   parseDate(cell(row, index, ColPaymentDate)),
		Card:          cell(row, index, ColCard),
		Amount:        core.Money{Cents: amount},
		PaymentAmount: core.Money{Cents: payment},
		Currency:      cell(row, index, ColCurrency),
		Category:      cell(row, index, ColCategory),
		MCC:           mcc,
		Description:   cell(row, index, ColDescription),
		Cashback:      core.Money{Cents: cashback},
		Roundup:       core.Money{Cents: roundup},
	}
	return core.Normalize(t), true
}
