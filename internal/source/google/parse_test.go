package google

import (
	"context"
	"testing"
)

func TestParseValues(t *testing.T) {
	values := [][]interface{}{
		{"Дата операции", "Сумма операции", "Категория", "Описание"},
		{"03.01.2024 11:00:00", "-1560,30", "Супермаркеты", "Колхоз"},
		{"", "", "", ""},
		{"07.01.2024 10:00:00", "50000,00", "Зарплата", "Начисление заработной платы"},
	}

	records := parseValues(context.Background(), values)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Amount.Cents != 156030 || !records[0].IsSpend() {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if !records[1].IsIncome() {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestParseValuesEmpty(t *testing.T) {
	records := parseValues(context.Background(), nil)
	if records == nil || len(records) != 0 {
		t.Fatalf("expected an empty, non-nil slice, got %#v", records)
	}
}
