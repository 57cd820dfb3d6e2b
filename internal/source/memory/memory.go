// Package memory is an in-process record source for tests and demo runs.
package memory

import (
	"context"
	"sync"
	"time"

	"vypiska/internal/core"
	"vypiska/internal/source"
)

// Store holds an immutable record collection.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

var _ source.Reader = (*Store)(nil)

// New builds a store over the given records.
func New(records []core.Transaction) *Store {
	return &Store{items: append([]core.Transaction(nil), records...)}
}

// Load returns a copy of the collection; callers can never mutate the
// store through the result.
func (s *Store) Load(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

// NewSample seeds a store with a small, plausible statement so the server
// and demo binary work without any external backend configured.
func NewSample() *Store {
	day := func(d, hour int) time.Time {
		return time.Date(2024, time.January, d, hour, 0, 0, 0, time.UTC)
	}
	raw := []core.Transaction{
		{OperationDate: day(3, 11), Card: "*7197", Amount: core.Money{Cents: -156030}, PaymentAmount: core.Money{Cents: -156030}, Currency: "RUB", Category: "Супермаркеты", MCC: 5411, Description: "Колхоз", Cashback: core.Money{Cents: 1560}, Roundup: core.Money{Cents: 3970}},
		{OperationDate: day(4, 9), Card: "*7197", Amount: core.Money{Cents: -52000}, PaymentAmount: core.Money{Cents: -52000}, Currency: "RUB", Category: "Транспорт", MCC: 4121, Description: "Такси +7 999 123-45-67"},
		{OperationDate: day(5, 20), Card: "*5091", Amount: core.Money{Cents: -300000}, PaymentAmount: core.Money{Cents: -300000}, Currency: "RUB", Category: "Переводы", Description: "Перевод Иванов И."},
		{OperationDate: day(6, 14), Card: "*5091", Amount: core.Money{Cents: -78050}, PaymentAmount: core.Money{Cents: -78050}, Currency: "RUB", Category: "Рестораны", MCC: 5812, Description: "Кафе у дома", Cashback: core.Money{Cents: 3900}},
		{OperationDate: day(7, 10), Card: "*7197", Amount: core.Money{Cents: 5000000}, PaymentAmount: core.Money{Cents: 5000000}, Currency: "RUB", Category: "Зарплата", Description: "Начисление заработной платы"},
		{OperationDate: day(8, 18), Card: "*7197", Amount: core.Money{Cents: -12300}, PaymentAmount: core.Money{Cents: -12300}, Currency: "RUB", Category: "Связь", MCC: 4814, Description: "МТС 8 921 555 66 77"},
	}
	records := make([]core.Transaction, 0, len(raw))
	for _, t := range raw {
		records = append(records, core.Normalize(t))
	}
	return New(records)
}
