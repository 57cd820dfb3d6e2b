package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleStatement = `Дата операции;Дата платежа;Номер карты;Сумма операции;Валюта операции;Сумма платежа;Категория;MCC;Описание;Кэшбэк;Округление на «Инвесткопилку»
03.01.2024 11:00:00;04.01.2024;*7197;-1560,30;RUB;-1560,30;Супермаркеты;5411;Колхоз;15,60;39,70
04.01.2024 09:15:00;04.01.2024;*7197;-520,00;RUB;-520,00;Транспорт;4121;Такси +7 999 123-45-67;;
;;;;;;;;;;
07.01.2024 10:00:00;07.01.2024;*7197;50000,00;RUB;50000,00;Зарплата;;Начисление заработной платы;;
`

func writeStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write statement: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeStatement(t, sampleStatement)

	records, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records (filler row skipped), got %d", len(records))
	}
	if records[0].Category != "Супермаркеты" || records[0].Amount.Cents != 156030 {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if !records[0].IsSpend() {
		t.Fatalf("export spend must normalize to a positive amount")
	}
	if !records[2].IsIncome() {
		t.Fatalf("export income must normalize to a negative amount, got %+v", records[2])
	}
}

func TestLoadWithCommaSeparator(t *testing.T) {
	path := writeStatement(t, "Сумма операции,Категория\n\"-100,00\",Связь\n")

	records, err := New(path).WithComma(',').Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 || records[0].Amount.Cents != 10000 {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background()); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeStatement(t, "")
	if _, err := New(path).Load(context.Background()); err == nil {
		t.Fatalf("expected an error for a file without a header")
	}
}
