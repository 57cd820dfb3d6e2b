package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vypiska/internal/amqp"
)

type stubArchiver struct {
	kinds    []string
	payloads []string
	err      error
}

func (a *stubArchiver) SaveReport(_ context.Context, kind string, payload json.RawMessage, _ time.Time) (int64, error) {
	if a.err != nil {
		return 0, a.err
	}
	a.kinds = append(a.kinds, kind)
	a.payloads = append(a.payloads, string(payload))
	return int64(len(a.kinds)), nil
}

func TestHandleReportMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte(`{"total":100}`), 0o644); err != nil {
		t.Fatalf("write report file: %v", err)
	}

	archiver := &stubArchiver{}
	w := NewArchiveWorker(archiver)

	msg := amqp.NewReportGeneratedMessage("report_spending_by_weekday", path, time.Now())
	if err := w.HandleReportMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleReportMessage: %v", err)
	}
	if len(archiver.kinds) != 1 || archiver.kinds[0] != "report_spending_by_weekday" {
		t.Fatalf("unexpected archived kinds: %v", archiver.kinds)
	}
	if archiver.payloads[0] != `{"total":100}` {
		t.Fatalf("archive must hold the file payload verbatim, got %s", archiver.payloads[0])
	}
}

func TestHandleReportMessageMissingFile(t *testing.T) {
	w := NewArchiveWorker(&stubArchiver{})
	msg := amqp.NewReportGeneratedMessage("report_spending_by_weekday", filepath.Join(t.TempDir(), "nope.json"), time.Now())
	if err := w.HandleReportMessage(context.Background(), msg); err == nil {
		t.Fatalf("expected an error for a missing report file")
	}
}

func TestHandleReportMessageInvalidPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte(`{broken`), 0o644); err != nil {
		t.Fatalf("write report file: %v", err)
	}

	w := NewArchiveWorker(&stubArchiver{})
	msg := amqp.NewReportGeneratedMessage("report_spending_by_weekday", path, time.Now())
	if err := w.HandleReportMessage(context.Background(), msg); err == nil {
		t.Fatalf("expected an error for a malformed report file")
	}
}
