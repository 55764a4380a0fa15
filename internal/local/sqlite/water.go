package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aquatrack/hydrosync/internal/model"
)

// ListWaterEntries returns every water entry ordered by timestamp.
func (s *Store) ListWaterEntries(ctx context.Context) ([]model.WaterEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount_ml, drink_type, timestamp_ms, created_at_ms
		FROM water_entries
		ORDER BY timestamp_ms, id`)
	if err != nil {
		return nil, fmt.Errorf("query water entries: %w", err)
	}
	defer rows.Close()

	var out []model.WaterEntry
	for rows.Next() {
		var (
			e               model.WaterEntry
			tsMs, createdMs int64
		)
		if err := rows.Scan(&e.ID, &e.AmountML, &e.DrinkType, &tsMs, &createdMs); err != nil {
			return nil, fmt.Errorf("scan water entry: %w", err)
		}
		e.Timestamp = time.UnixMilli(tsMs).UTC()
		e.CreatedAt = time.UnixMilli(createdMs).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate water entries: %w", err)
	}
	return out, nil
}

// InsertWaterEntry stores the entry if no entry with the same id exists.
func (s *Store) InsertWaterEntry(ctx context.Context, e model.WaterEntry) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO water_entries (id, amount_ml, drink_type, timestamp_ms, created_at_ms)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		e.ID, e.AmountML, e.DrinkType, e.Timestamp.UnixMilli(), e.CreatedAt.UnixMilli())
	if err != nil {
		return false, fmt.Errorf("insert water entry %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert water entry %d: %w", e.ID, err)
	}
	return n == 1, nil
}
