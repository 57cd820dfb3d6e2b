package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"vypiska/internal/amqp"
	"vypiska/internal/analytics"
	"vypiska/internal/config"
	apphttp "vypiska/internal/http"
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
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	records, err := newRecordSource(cfg)
	if err != nil {
		logger.Error("Failed to initialize record source", "error", err, "source", cfg.DataSource)
		os.Exit(1)
	}
	logger.Info("Initialized record source", "source", cfg.DataSource)

	provider := quotes.NewHTTPProvider(quotes.DefaultRatesURL, quotes.DefaultChartsURL, cfg.QuotesTimeout)
	pages := analytics.NewPageBuilder(provider, cfg.UserCurrencies, cfg.UserStocks, cfg.QuotesTimeout)

	var publisher services.ReportPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP report events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	reportSvc := services.NewReportService(records, reports.NewWriter(cfg.ReportsDir), publisher)

	srv := apphttp.NewServer(":"+cfg.Port, records, pages, reportSvc)
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting vypiska server", "port", cfg.Port, "source", cfg.DataSource)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func newRecordSource(cfg *config.Config) (source.Reader, error) {
	switch cfg.DataSource {
	case "csv":
		return csvfile.New(cfg.CSVPath), nil
	case "sheets":
		return google.NewFromEnv(context.Background())
	default:
		return memory.NewSample(), nil
	}
}
