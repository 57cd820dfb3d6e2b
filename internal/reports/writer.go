package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Writer persists report payloads as timestamped JSON files in one
// directory. Persistence is opt-in: builders never write on their own.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter builds a writer over the given directory. The directory is
// created on the first save.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// WithClock overrides the timestamp source, for tests.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Save writes the payload as <kind>_<timestamp>.json and returns the
// full path of the written file.
func (w *Writer) Save(ctx context.Context, kind string, payload any) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", kind, w.now().Format("20060102_150405"))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}

	slog.InfoContext(ctx, "Saved report file", "kind", kind, "path", path)
	return path, nil
}
