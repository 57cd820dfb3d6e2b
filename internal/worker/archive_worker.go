// Package worker archives generated report files into SQLite as the
// report-generated events arrive.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"vypiska/internal/amqp"
)

// ReportArchiver stores one report payload. *storage.SQLiteRepository
// satisfies it.
type ReportArchiver interface {
	SaveReport(ctx context.Context, kind string, payload json.RawMessage, generatedAt time.Time) (int64, error)
}

// ArchiveWorker reads announced report files from disk and persists
// them in the archive.
type ArchiveWorker struct {
	archive ReportArchiver
}

func NewArchiveWorker(archive ReportArchiver) *ArchiveWorker {
	return &ArchiveWorker{archive: archive}
}

// HandleReportMessage processes a single report-generated message. The
// payload is re-read from the announced file so the archive holds
// exactly what was written.
func (w *ArchiveWorker) HandleReportMessage(ctx context.Context, msg *amqp.ReportGeneratedMessage) error {
	slog.InfoContext(ctx, "Processing report message",
		"kind", msg.Kind,
		"path", msg.Path)

	payload, err := os.ReadFile(msg.Path)
	if err != nil {
		return fmt.Errorf("read report file: %w", err)
	}
	if !json.Valid(payload) {
		return fmt.Errorf("report file %s is not valid JSON", msg.Path)
	}

	id, err := w.archive.SaveReport(ctx, msg.Kind, payload, msg.GeneratedAt)
	if err != nil {
		return fmt.Errorf("archive report: %w", err)
	}

	slog.InfoContext(ctx, "Report archived from file",
		"id", id,
		"kind", msg.Kind,
		"path", msg.Path)
	return nil
}
