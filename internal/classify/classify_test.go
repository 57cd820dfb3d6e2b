package classify

import (
	"testing"

	"vypiska/internal/core"
)

func tx(category, description string) core.Transaction {
	return core.Transaction{Category: category, Description: description}
}

func TestMatchesKeyword(t *testing.T) {
	cases := []struct {
		desc string
		term string
		want bool
	}{
		{"Покупка в магазине", "магазин", true},
		{"Покупка в МАГАЗИНЕ", "магазин", true},
		{"Такси", "магазин", false},
		{"Такси", "", true}, // empty term is a pass-through
		{"", "такси", false},
	}
	for i, tc := range cases {
		if got := MatchesKeyword(tx("", tc.desc), tc.term); got != tc.want {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, got)
		}
	}
}

func TestHasPhoneNumber(t *testing.T) {
	cases := []struct {
		desc string
		want bool
	}{
		{"Такси +7 999 123-45-67", true},
		{"МТС 8 921 555 66 77", true},
		{"Пополнение 7(900)1112233", true},
		{"Оплата услуг", false},
		{"Счёт 12 34", false},
		{"", false},
	}
	for i, tc := range cases {
		if got := HasPhoneNumber(tx("", tc.desc)); got != tc.want {
			t.Fatalf("case %d (%q): expected %v, got %v", i, tc.desc, tc.want, got)
		}
	}
}

func TestIsPersonalTransfer(t *testing.T) {
	cases := []struct {
		category string
		desc     string
		want     bool
	}{
		{"Переводы", "Перевод Иванов И.", true},
		{"Переводы", "Петров П.", true},
		{"Супермаркеты", "Перевод Иванов И.", false}, // wrong category
		{"Переводы", "Перевод на карту", false},      // no personal name
		{"Переводы", "", false},
		{"", "Иванов И.", false},
	}
	for i, tc := range cases {
		if got := IsPersonalTransfer(tx(tc.category, tc.desc)); got != tc.want {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, got)
		}
	}
}

func TestSearchFilters(t *testing.T) {
	records := []core.Transaction{
		tx("Супермаркеты", "Покупка в магазине"),
		tx("Переводы", "Перевод Иванов И."),
		tx("Связь", "МТС +7 999 123-45-67"),
	}

	if got := Search(records, "магазин"); len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got := Search(records, ""); len(got) != len(records) {
		t.Fatalf("empty term must return everything, got %d", len(got))
	}
	if got := PhoneTransactions(records); len(got) != 1 || got[0].Category != "Связь" {
		t.Fatalf("expected the phone record, got %+v", got)
	}
	if got := PersonalTransfers(records); len(got) != 1 || got[0].Category != "Переводы" {
		t.Fatalf("expected the transfer record, got %+v", got)
	}

	// Empty input yields empty, non-nil slices.
	if got := Search(nil, "x"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice for nil input")
	}
}
