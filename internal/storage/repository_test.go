package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndListReports(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	if _, err := repo.SaveReport(ctx, "report_spending_by_weekday", json.RawMessage(`{"total":100}`), first); err != nil {
		t.Fatalf("save first report: %v", err)
	}
	id, err := repo.SaveReport(ctx, "report_spending_by_weekday", json.RawMessage(`{"total":200}`), second)
	if err != nil {
		t.Fatalf("save second report: %v", err)
	}
	if _, err := repo.SaveReport(ctx, "report_spending_by_workday", json.RawMessage(`{"total":300}`), second); err != nil {
		t.Fatalf("save other kind: %v", err)
	}

	reports, err := repo.ListReports(ctx, "report_spending_by_weekday", 10)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].ID != id {
		t.Fatalf("expected newest report first, got id %d", reports[0].ID)
	}

	all, err := repo.ListReports(ctx, "", 10)
	if err != nil {
		t.Fatalf("list all reports: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 reports across kinds, got %d", len(all))
	}
}

func TestLatestReport(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.LatestReport(ctx, "report_spending_by_weekday"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows on an empty archive, got %v", err)
	}

	at := time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)
	if _, err := repo.SaveReport(ctx, "report_spending_by_weekday", json.RawMessage(`{"total":100}`), at); err != nil {
		t.Fatalf("save report: %v", err)
	}

	latest, err := repo.LatestReport(ctx, "report_spending_by_weekday")
	if err != nil {
		t.Fatalf("latest report: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(latest.Payload, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
}

func TestSaveReportRejectsInvalidPayload(t *testing.T) {
	repo := newTestRepository(t)
	if _, err := repo.SaveReport(context.Background(), "report_spending_by_weekday", json.RawMessage(`{`), time.Now()); err == nil {
		t.Fatalf("expected an error for malformed payload")
	}
}
