package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const archiveFileName = "archive.sqlite"

// ExportRecord is one row of the export archive: which invoice was exported,
// to where, and its grand total at the time.
type ExportRecord struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Title         string    `json:"title"`
	Currency      string    `json:"currency"`
	Total         float64   `json:"total"`
	Path          string    `json:"path"`
	ExportedAt    time.Time `json:"exportedAt"`
}

func (s Store) archivePath() string {
	return filepath.Join(s.Dir, archiveFileName)
}

func (s Store) openArchive(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.archivePath())
	if err != nil {
		return nil, err
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS exports (
			id          TEXT PRIMARY KEY,
			number      TEXT NOT NULL,
			title       TEXT NOT NULL,
			currency    TEXT NOT NULL,
			total       REAL NOT NULL,
			path        TEXT NOT NULL,
			exported_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_exports_exported_at ON exports(exported_at);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// RecordExport archives a completed PDF export.
func (s Store) RecordExport(ctx context.Context, rec ExportRecord) (ExportRecord, error) {
	db, err := s.openArchive(ctx)
	if err != nil {
		return ExportRecord{}, err
	}
	defer db.Close()

	if rec.ID == "" {
		id, err := newRandomID("exp")
		if err != nil {
			return ExportRecord{}, err
		}
		rec.ID = id
	}
	if rec.ExportedAt.IsZero() {
		rec.ExportedAt = time.Now().UTC()
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO exports(id, number, title, currency, total, path, exported_at) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.InvoiceNumber, rec.Title, rec.Currency, rec.Total, rec.Path,
		rec.ExportedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return ExportRecord{}, err
	}
	return rec, nil
}

// ListExports returns archived exports newest-first.
func (s Store) ListExports(ctx context.Context, limit int) ([]ExportRecord, error) {
	db, err := s.openArchive(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, number, title, currency, total, path, exported_at FROM exports ORDER BY exported_at DESC, id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ExportRecord{}
	for rows.Next() {
		var rec ExportRecord
		var at string
		if err := rows.Scan(&rec.ID, &rec.InvoiceNumber, &rec.Title, &rec.Currency, &rec.Total, &rec.Path, &at); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			rec.ExportedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
