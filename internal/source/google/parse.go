package google

import (
	"context"
	"fmt"
	"log/slog"

	"vypiska/internal/core"
	"vypiska/internal/source"
)

// parseValues converts a values matrix (as returned by the Sheets API)
// into normalized transactions. The first row must be the header row;
// filler rows without an amount are skipped.
func parseValues(ctx context.Context, values [][]interface{}) []core.Transaction {
	records := make([]core.Transaction, 0)
	if len(values) == 0 {
		return records
	}
	index := source.ColumnIndex(toStrings(values[0]))
	for i := 1; i < len(values); i++ {
		t, ok := source.ParseRow(toStrings(values[i]), index)
		if !ok {
			slog.DebugContext(ctx, "Skipping sheet row without amount", "row", i+1)
			continue
		}
		records = append(records, t)
	}
	return records
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprint(v)
	}
	return out
}
