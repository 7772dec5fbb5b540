package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pagelens/pagelens/dbopen"
)

// Analysis is one persisted analysis row. ReportJSON holds the full scored
// report; callers decode it back into score.Report.
type Analysis struct {
	ID             string `json:"id"`
	URL            string `json:"url"`
	DeviceType     string `json:"device_type"`
	Title          string `json:"title,omitempty"`
	TotalScore     int    `json:"total_score"`
	ReportJSON     string `json:"-"`
	ScreenshotPath string `json:"screenshot_path,omitempty"`
	SnapshotPath   string `json:"snapshot_path,omitempty"`
	DurationMs     int64  `json:"duration_ms"`
	CreatedAt      int64  `json:"created_at"` // unix millis
}

// Insert persists a new analysis.
func (s *Store) Insert(ctx context.Context, a *Analysis) error {
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().UnixMilli()
	}
	if a.DeviceType == "" {
		a.DeviceType = "desktop"
	}

	_, err := dbopen.Exec(ctx, s.DB,
		`INSERT INTO analyses (id, url, device_type, title, total_score, report_json,
		screenshot_path, snapshot_path, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.URL, a.DeviceType, a.Title, a.TotalScore, a.ReportJSON,
		a.ScreenshotPath, a.SnapshotPath, a.DurationMs, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store: insert analysis %s: %w", a.ID, err)
	}
	return nil
}

// Get retrieves an analysis by ID. Returns ErrNotFound when absent.
func (s *Store) Get(ctx context.Context, id string) (*Analysis, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT id, url, device_type, title, total_score, report_json,
		screenshot_path, snapshot_path, duration_ms, created_at
		FROM analyses WHERE id = ?`, id)

	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get analysis %s: %w", id, err)
	}
	return a, nil
}

// Recent returns the most recent analyses, newest first. The report JSON is
// included so callers can render summaries without a second query.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, url, device_type, title, total_score, report_json,
		screenshot_path, snapshot_path, duration_ms, created_at
		FROM analyses ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list analyses: %w", err)
	}
	defer rows.Close()

	var out []*Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan analysis: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(sc scanner) (*Analysis, error) {
	var a Analysis
	err := sc.Scan(&a.ID, &a.URL, &a.DeviceType, &a.Title, &a.TotalScore, &a.ReportJSON,
		&a.ScreenshotPath, &a.SnapshotPath, &a.DurationMs, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
