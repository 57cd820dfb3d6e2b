// Package csvfile reads the transaction collection from a local CSV
// statement export (semicolon-separated, the bank's download format).
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"vypiska/internal/core"
	"vypiska/internal/source"
)

// Reader loads transactions from one CSV file.
type Reader struct {
	path  string
	comma rune
}

var _ source.Reader = (*Reader)(nil)

// New builds a reader for the given path with the default semicolon
// separator.
func New(path string) *Reader {
	return &Reader{path: path, comma: ';'}
}

// WithComma overrides the field separator.
func (r *Reader) WithComma(comma rune) *Reader {
	r.comma = comma
	return r
}

// Load reads and normalizes the whole file. Rows that cannot be parsed
// are logged and skipped; a missing file or header is an error for the
// caller to handle.
func (r *Reader) Load(ctx context.Context) ([]core.Transaction, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open statement file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = r.comma
	cr.FieldsPerRecord = -1 // exports pad rows unevenly

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read statement header: %w", err)
	}
	index := source.ColumnIndex(header)

	records := make([]core.Transaction, 0)
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed statement row", "path", r.path, "line", line, "error", err)
			continue
		}
		t, ok := source.ParseRow(row, index)
		if !ok {
			slog.DebugContext(ctx, "Skipping row without amount", "path", r.path, "line", line)
			continue
		}
		records = append(records, t)
	}

	slog.InfoContext(ctx, "Loaded statement file", "path", r.path, "records", len(records))
	return records, nil
}
