// Package storage archives generated report payloads in SQLite so past
// reports stay queryable after the files rotate away.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ArchivedReport is one stored report row.
type ArchivedReport struct {
	ID          int64           `json:"id"`
	Kind        string          `json:"kind"`
	Payload     json.RawMessage `json:"payload"`
	GeneratedAt time.Time       `json:"generated_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SQLiteRepository persists report archive rows.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (or creates) the archive database and runs
// migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveReport stores one report payload and returns its row id.
func (r *SQLiteRepository) SaveReport(ctx context.Context, kind string, payload json.RawMessage, generatedAt time.Time) (int64, error) {
	if !json.Valid(payload) {
		return 0, fmt.Errorf("report payload for kind %q is not valid JSON", kind)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (kind, payload, generated_at) VALUES (?, ?, ?)`,
		kind, string(payload), generatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("report insert id: %w", err)
	}

	slog.InfoContext(ctx, "Report archived",
		"id", id,
		"kind", kind,
		"generated_at", generatedAt)
	return id, nil
}

// ListReports returns up to limit reports of one kind, newest first. An
// empty kind lists across all kinds.
func (r *SQLiteRepository) ListReports(ctx context.Context, kind string, limit int) ([]ArchivedReport, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, kind, payload, generated_at, created_at
	          FROM reports WHERE (? = '' OR kind = ?)
	          ORDER BY generated_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, kind, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := make([]ArchivedReport, 0, limit)
	for rows.Next() {
		var rep ArchivedReport
		var payload string
		if err := rows.Scan(&rep.ID, &rep.Kind, &payload, &rep.GeneratedAt, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		rep.Payload = json.RawMessage(payload)
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}
	return out, nil
}

// LatestReport returns the most recent report of one kind, or
// sql.ErrNoRows when the archive has none.
func (r *SQLiteRepository) LatestReport(ctx context.Context, kind string) (ArchivedReport, error) {
	var rep ArchivedReport
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, kind, payload, generated_at, created_at
		 FROM reports WHERE kind = ?
		 ORDER BY generated_at DESC, id DESC LIMIT 1`, kind).
		Scan(&rep.ID, &rep.Kind, &payload, &rep.GeneratedAt, &rep.CreatedAt)
	if err != nil {
		return ArchivedReport{}, fmt.Errorf("latest report for kind %q: %w", kind, err)
	}
	rep.Payload = json.RawMessage(payload)
	return rep, nil
}
