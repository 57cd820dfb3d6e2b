// Package services orchestrates report generation across the record
// source, the file writer and the AMQP event stream.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vypiska/internal/core"
	"vypiska/internal/reports"
	"vypiska/internal/source"
)

// ReportPublisher announces saved report files. *amqp.Client satisfies
// it; tests use a stub.
type ReportPublisher interface {
	PublishReportGenerated(ctx context.Context, kind, path string, generatedAt time.Time) error
}

// ReportService builds reports and, on request, persists them as files
// and announces them downstream. Persistence never happens implicitly.
type ReportService struct {
	records   source.Reader
	writer    *reports.Writer
	publisher ReportPublisher
	now       func() time.Time
}

func NewReportService(records source.Reader, writer *reports.Writer, publisher ReportPublisher) *ReportService {
	return &ReportService{
		records:   records,
		writer:    writer,
		publisher: publisher,
		now:       time.Now,
	}
}

// WithClock overrides the timestamp source, for tests.
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// SpendingByCategory builds the monthly per-category report.
func (s *ReportService) SpendingByCategory(ctx context.Context, category string, persist bool) (reports.CategoryReport, error) {
	records, err := s.load(ctx)
	if err != nil {
		return reports.CategoryReport{}, err
	}

	report := reports.SpendingByCategory(records, category, s.now())
	if persist {
		s.persist(ctx, reports.KindCategory, report, report.GeneratedAt)
	}
	return report, nil
}

// SpendingByWeekday builds the weekday report.
func (s *ReportService) SpendingByWeekday(ctx context.Context, persist bool) (reports.WeekdayReport, error) {
	records, err := s.load(ctx)
	if err != nil {
		return reports.WeekdayReport{}, err
	}

	report := reports.SpendingByWeekday(records, s.now())
	if persist {
		s.persist(ctx, reports.KindWeekday, report, report.GeneratedAt)
	}
	return report, nil
}

// SpendingByWorkday builds the workday/weekend report.
func (s *ReportService) SpendingByWorkday(ctx context.Context, persist bool) (reports.WorkdayReport, error) {
	records, err := s.load(ctx)
	if err != nil {
		return reports.WorkdayReport{}, err
	}

	report := reports.SpendingByWorkday(records, s.now())
	if persist {
		s.persist(ctx, reports.KindWorkday, report, report.GeneratedAt)
	}
	return report, nil
}

func (s *ReportService) load(ctx context.Context) ([]core.Transaction, error) {
	records, err := s.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return records, nil
}

// persist saves the report file and announces it. Neither failure aborts
// the request: the computed report is already in hand.
func (s *ReportService) persist(ctx context.Context, kind string, report any, generatedAt time.Time) {
	if s.writer == nil {
		slog.WarnContext(ctx, "Report writer not available, skipping persistence", "kind", kind)
		return
	}

	path, err := s.writer.Save(ctx, kind, report)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to save report file", "kind", kind, "error", err)
		return
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping report message", "kind", kind)
		return
	}
	if err := s.publisher.PublishReportGenerated(ctx, kind, path, generatedAt); err != nil {
		slog.ErrorContext(ctx, "Failed to publish report message",
			"kind", kind, "path", path, "error", err)
	}
}
