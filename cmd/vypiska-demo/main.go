// Command vypiska-demo runs the whole analytics suite once over the
// configured record source and prints a short summary of every step.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"vypiska/internal/aggregate"
	"vypiska/internal/analytics"
	"vypiska/internal/classify"
	"vypiska/internal/config"
	"vypiska/internal/core"
	applog "vypiska/internal/log"
	"vypiska/internal/quotes"
	"vypiska/internal/reports"
	"vypiska/internal/services"
	"vypiska/internal/source"
	"vypiska/internal/source/csvfile"
	"vypiska/internal/source/google"
	"vypiska/internal/source/memory"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	records, err := newRecordSource(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize record source", "error", err, "source", cfg.DataSource)
		os.Exit(1)
	}

	fmt.Println("Запуск анализа банковских транзакций")

	collection, err := records.Load(ctx)
	if err != nil {
		logger.Error("Failed to load records", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Загружено %d транзакций\n", len(collection))

	provider := quotes.NewHTTPProvider(quotes.DefaultRatesURL, quotes.DefaultChartsURL, cfg.QuotesTimeout)
	pages := analytics.NewPageBuilder(provider, cfg.UserCurrencies, cfg.UserStocks, cfg.QuotesTimeout)

	fmt.Println("\nСтраницы:")
	home := pages.HomePage(ctx, collection)
	fmt.Printf("Главная страница: %d карт, %d топ-транзакций\n", len(home.Cards), len(home.TopTransactions))

	events := pages.EventsPage(ctx, collection, "M")
	fmt.Printf("Страница событий (%s): расходы %s, поступления %s\n",
		events.Period, events.Expenses.Total, events.Incomes.Total)

	fmt.Println("\nСервисы:")
	now := time.Now()
	profitable := aggregate.ProfitableCategories(collection, now.Year(), now.Month(), 0.01)
	fmt.Printf("Выгодные категории кешбэка: %d категорий\n", len(profitable))

	// 50-ruble rounding step, the default piggybank increment.
	saved := aggregate.InvestmentRoundup(collection, now.Year(), now.Month(), core.Money{Cents: 5000})
	fmt.Printf("Инвесткопилка: %s руб.\n", saved)

	found := classify.Search(collection, "магазин")
	fmt.Printf("Простой поиск: найдено %d транзакций\n", len(found))

	phones := classify.PhoneTransactions(collection)
	fmt.Printf("Поиск по телефонам: найдено %d транзакций\n", len(phones))

	transfers := classify.PersonalTransfers(collection)
	fmt.Printf("Переводы физлицам: найдено %d транзакций\n", len(transfers))

	fmt.Println("\nОтчеты:")
	reportSvc := services.NewReportService(records, reports.NewWriter(cfg.ReportsDir), nil)

	categoryReport, err := reportSvc.SpendingByCategory(ctx, "Супермаркеты", true)
	if err != nil {
		logger.Error("Category report failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Отчет по категории: %d месяцев\n", len(categoryReport.Months))

	weekdayReport, err := reportSvc.SpendingByWeekday(ctx, true)
	if err != nil {
		logger.Error("Weekday report failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Отчет по дням недели: %d дней\n", len(weekdayReport.Days))

	workdayReport, err := reportSvc.SpendingByWorkday(ctx, true)
	if err != nil {
		logger.Error("Workday report failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Отчет по типам дней: %d категорий\n", len(workdayReport.Categories))

	fmt.Printf("\nОтчеты сохранены в %s\n", cfg.ReportsDir)
}

func newRecordSource(ctx context.Context, cfg *config.Config) (source.Reader, error) {
	switch cfg.DataSource {
	case "csv":
		return csvfile.New(cfg.CSVPath), nil
	case "sheets":
		return google.NewFromEnv(ctx)
	default:
		return memory.NewSample(), nil
	}
}
