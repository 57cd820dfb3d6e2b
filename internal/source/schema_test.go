package source

import (
	"testing"
	"time"
)

var testHeader = []string{
	"Дата операции", "Дата платежа", "Номер карты", "Сумма операции",
	"Валюта операции", "Сумма платежа", "Категория", "MCC", "Описание",
	"Кэшбэк", "Округление на «Инвесткопилку»",
}

func TestParseRow(t *testing.T) {
	index := ColumnIndex(testHeader)
	row := []string{
		"03.01.2024 11:00:00", "04.01.2024", "*7197", "-1560,30",
		"RUB", "-1560,30", "Супермаркеты", "5411", "Колхоз",
		"15,60", "39,70",
	}
	tx, ok := ParseRow(row, index)
	if !ok {
		t.Fatalf("expected row to parse")
	}
	if tx.OperationDate != time.Date(2024, time.January, 3, 11, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected operation date: %v", tx.OperationDate)
	}
	if tx.PaymentDate != time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected payment date: %v", tx.PaymentDate)
	}
	// Export sign is flipped at normalization: spend is positive.
	if tx.Amount.Cents != 156030 || !tx.IsSpend() {
		t.Fatalf("expected normalized spend 156030, got %d", tx.Amount.Cents)
	}
	if tx.Category != "Супермаркеты" || tx.MCC != 5411 {
		t.Fatalf("unexpected category/mcc: %q %d", tx.Category, tx.MCC)
	}
	if tx.Cashback.Cents != 1560 || tx.Roundup.Cents != 3970 {
		t.Fatalf("unexpected cashback/roundup: %d %d", tx.Cashback.Cents, tx.Roundup.Cents)
	}
}

func TestParseRowDefaults(t *testing.T) {
	index := ColumnIndex(testHeader)
	// No category, no dates, short row.
	row := []string{"", "", "", "-100,00", "RUB", "", "", "", "Оплата"}
	tx, ok := ParseRow(row, index)
	if !ok {
		t.Fatalf("expected row to parse")
	}
	if tx.Category != "Без категории" {
		t.Fatalf("expected default category, got %q", tx.Category)
	}
	if tx.HasOperationDate() {
		t.Fatalf("missing date must stay zero")
	}
	if tx.PaymentAmount.Cents != tx.Amount.Cents {
		t.Fatalf("payment amount must default to the operation amount")
	}
}

func TestParseRowSkipsFillerRows(t *testing.T) {
	index := ColumnIndex(testHeader)
	if _, ok := ParseRow([]string{"", "", "", "", "", "", "", "", ""}, index); ok {
		t.Fatalf("row without amount must be skipped")
	}
	if _, ok := ParseRow([]string{"", "", "", "не число"}, index); ok {
		t.Fatalf("row with a malformed amount must be skipped")
	}
}

func TestColumnIndexAltCashbackSpelling(t *testing.T) {
	index := ColumnIndex([]string{"Сумма операции", "Кешбэк"})
	row := []string{"-10,00", "1,00"}
	tx, ok := ParseRow(row, index)
	if !ok || tx.Cashback.Cents != 100 {
		t.Fatalf("alternate spelling must map to cashback, got %+v ok=%v", tx, ok)
	}
}

func TestParseDateLayouts(t *testing.T) {
	cases := []struct {
		in   string
		zero bool
	}{
		{"31.12.2023 23:59:59", false},
		{"31.12.2023", false},
		{"2023-12-31", false},
		{"31/12/2023", true},
		{"", true},
	}
	for _, tc := range cases {
		got := parseDate(tc.in)
		if got.IsZero() != tc.zero {
			t.Fatalf("%q: expected zero=%v, got %v", tc.in, tc.zero, got)
		}
	}
}
