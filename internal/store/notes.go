package store

import (
	"context"
	"fmt"
	"time"

	"github.com/starford/rapport/internal/apperr"
	"github.com/starford/rapport/internal/models"
)

// Add inserts n as a new row. The store issues the id, so rapid successive
// adds never collide.
func (db *DB) Add(ctx context.Context, n *models.MeetingNote) error {
	now := time.Now().UTC()
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO meeting_notes (date, start_time, end_time, reportee, points, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, n.Date, n.StartTime, n.EndTime, n.Reportee, n.Points, now)
	if err != nil {
		return fmt.Errorf("%w: insert note: %v", apperr.ErrStorage, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: last insert id: %v", apperr.ErrStorage, err)
	}
	n.ID = id
	n.CreatedAt = now
	return nil
}

// All returns every note ordered by id, which is insertion order.
func (db *DB) All(ctx context.Context) ([]models.MeetingNote, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, date, start_time, end_time, reportee, points, created_at
		FROM meeting_notes
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list notes: %v", apperr.ErrStorage, err)
	}
	defer rows.Close()

	out := []models.MeetingNote{}
	for rows.Next() {
		var n models.MeetingNote
		if err := rows.Scan(&n.ID, &n.Date, &n.StartTime, &n.EndTime, &n.Reportee, &n.Points, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan note: %v", apperr.ErrStorage, err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate notes: %v", apperr.ErrStorage, err)
	}
	return out, nil
}

// Count returns the number of stored notes.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM meeting_notes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count notes: %v", apperr.ErrStorage, err)
	}
	return n, nil
}
