package repository

import (
	"context"
	"database/sql"
	"time"

	"smartpan"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite {
	return &ReadingSQLite{db: db}
}

const (
	insertReadingSQL = `
		INSERT INTO readings (temp_c, fault, taken_at)
		VALUES (?, ?, ?)
	`

	selectRecentReadingsSQL = `
		SELECT id, temp_c, fault, taken_at
		FROM readings ORDER BY id DESC LIMIT ?
	`
)

// Record appends one sample row. Persisting telemetry is best-effort; the
// caller logs and continues on error.
func (r *ReadingSQLite) Record(ctx context.Context, s smartpan.TemperatureSample) error {
	tsUTC := s.TakenAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		s.Value,
		s.Fault,
		tsUTC,
	)
	return err
}

// Recent returns up to limit readings, newest first.
func (r *ReadingSQLite) Recent(ctx context.Context, limit int) ([]smartpan.Reading, error) {
	rows, err := r.db.QueryContext(ctx, selectRecentReadingsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]smartpan.Reading, 0, limit)
	for rows.Next() {
		var rd smartpan.Reading
		if err := rows.Scan(&rd.ID, &rd.TempC, &rd.Fault, &rd.TakenAt); err != nil {
			return nil, err
		}
		rd.TakenAt = rd.TakenAt.UTC()
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
