// Package sqlite persists the scan history log in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hubscan/internal/storage"

	_ "modernc.org/sqlite"
)

// Store keeps scan history rows inside a SQLite database.
type Store struct {
	db *sql.DB
}

// Open initializes (or reuses) a SQLite database at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("database path cannot be empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS scan_history (
        id TEXT PRIMARY KEY,
        scanned_at INTEGER NOT NULL,
        root TEXT NOT NULL,
        org_count INTEGER NOT NULL,
        model_count INTEGER NOT NULL,
        total_bytes INTEGER NOT NULL,
        duration_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scan_history_time ON scan_history(scanned_at);
`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// RecordScan appends one completed scan to the history log.
func (s *Store) RecordScan(ctx context.Context, rec storage.ScanRecord) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO scan_history(id, scanned_at, root, org_count, model_count, total_bytes, duration_ms)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, rec.ID, rec.ScannedAt.UnixNano(), rec.Root, rec.OrgCount, rec.ModelCount, rec.TotalBytes, rec.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record scan %s: %w", rec.ID, err)
	}
	return nil
}

// RecentScans returns up to limit history rows, newest first.
func (s *Store) RecentScans(ctx context.Context, limit int) ([]storage.ScanRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, scanned_at, root, org_count, model_count, total_bytes, duration_ms
FROM scan_history ORDER BY scanned_at DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scan history: %w", err)
	}
	defer rows.Close()

	var records []storage.ScanRecord
	for rows.Next() {
		var (
			rec        storage.ScanRecord
			scannedAt  int64
			durationMS int64
		)
		if scanErr := rows.Scan(&rec.ID, &scannedAt, &rec.Root, &rec.OrgCount, &rec.ModelCount, &rec.TotalBytes, &durationMS); scanErr != nil {
			return nil, fmt.Errorf("scan history row: %w", scanErr)
		}
		rec.ScannedAt = time.Unix(0, scannedAt)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scan history: %w", err)
	}

	return records, nil
}

// Prune keeps only the newest keep rows of the history log.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
DELETE FROM scan_history WHERE id NOT IN (
        SELECT id FROM scan_history ORDER BY scanned_at DESC LIMIT ?
)
`, keep)
	if err != nil {
		return fmt.Errorf("prune scan history: %w", err)
	}
	return nil
}
