package db

import (
	"context"
	"database/sql"
	"fmt"
)

// ReportRecord is one generated weekly report in the history table.
type ReportRecord struct {
	ID        int64
	Year      int
	Week      int
	Path      string
	KPI       float64
	CreatedAt string
}

// SaveReport records a generated report. Re-running within the same ISO
// week updates the existing row, matching the overwrite semantics of the
// report file itself.
func (db *DB) SaveReport(ctx context.Context, rec ReportRecord) error {
	query := `
		INSERT INTO reports (year, week, path, kpi)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(year, week) DO UPDATE SET
			path = excluded.path,
			kpi = excluded.kpi,
			created_at = CURRENT_TIMESTAMP
	`
	_, err := db.ExecContext(ctx, query, rec.Year, rec.Week, rec.Path, rec.KPI)
	if err != nil {
		return fmt.Errorf("failed to save report record: %w", err)
	}
	return nil
}

// GetReport retrieves the record for a specific week, or nil when absent.
func (db *DB) GetReport(ctx context.Context, year, week int) (*ReportRecord, error) {
	var rec ReportRecord
	query := `SELECT id, year, week, path, kpi, created_at FROM reports WHERE year = ? AND week = ?`
	err := db.QueryRowContext(ctx, query, year, week).
		Scan(&rec.ID, &rec.Year, &rec.Week, &rec.Path, &rec.KPI, &rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report record: %w", err)
	}
	return &rec, nil
}

// PreviousKPI returns the KPI of the most recent report strictly before the
// given week. The second return reports whether such a record exists.
func (db *DB) PreviousKPI(ctx context.Context, year, week int) (float64, bool, error) {
	var kpi float64
	query := `
		SELECT kpi FROM reports
		WHERE year < ? OR (year = ? AND week < ?)
		ORDER BY year DESC, week DESC
		LIMIT 1
	`
	err := db.QueryRowContext(ctx, query, year, year, week).Scan(&kpi)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get previous kpi: %w", err)
	}
	return kpi, true, nil
}

// RecentReports retrieves the most recent N report records, newest first.
func (db *DB) RecentReports(ctx context.Context, limit int) ([]ReportRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `SELECT id, year, week, path, kpi, created_at FROM reports ORDER BY year DESC, week DESC LIMIT ?`
	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		if err := rows.Scan(&rec.ID, &rec.Year, &rec.Week, &rec.Path, &rec.KPI, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}
