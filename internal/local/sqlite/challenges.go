package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aquatrack/hydrosync/internal/model"
)

const challengeColumns = `id, type, title, target_ml, duration_days, start_date_ms, is_active,
	is_completed, current_streak, violations, completed_at_ms`

// ListChallenges returns every challenge ordered by start date.
func (s *Store) ListChallenges(ctx context.Context) ([]model.Challenge, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+challengeColumns+` FROM challenges ORDER BY start_date_ms, id`)
	if err != nil {
		return nil, fmt.Errorf("query challenges: %w", err)
	}
	defer rows.Close()

	var out []model.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate challenges: %w", err)
	}
	return out, nil
}

// InsertChallenge stores the challenge if no challenge with the same id exists.
func (s *Store) InsertChallenge(ctx context.Context, c model.Challenge) (bool, error) {
	args, err := challengeArgs(c)
	if err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO challenges (`+challengeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`, args...)
	if err != nil {
		return false, fmt.Errorf("insert challenge %s: %w", c.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert challenge %s: %w", c.ID, err)
	}
	return n == 1, nil
}

// UpsertChallenge inserts or replaces the challenge.
func (s *Store) UpsertChallenge(ctx context.Context, c model.Challenge) error {
	args, err := challengeArgs(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO challenges (`+challengeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			target_ml = excluded.target_ml,
			duration_days = excluded.duration_days,
			start_date_ms = excluded.start_date_ms,
			is_active = excluded.is_active,
			is_completed = excluded.is_completed,
			current_streak = excluded.current_streak,
			violations = excluded.violations,
			completed_at_ms = excluded.completed_at_ms`, args...)
	if err != nil {
		return fmt.Errorf("upsert challenge %s: %w", c.ID, err)
	}
	return nil
}

func challengeArgs(c model.Challenge) ([]any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	ms := make([]int64, len(c.Violations))
	for i, v := range c.Violations {
		ms[i] = v.UnixMilli()
	}
	violations, err := json.Marshal(ms)
	if err != nil {
		return nil, fmt.Errorf("encode violations of challenge %s: %w", c.ID, err)
	}
	var completed sql.NullInt64
	if c.CompletedAt != nil {
		completed = sql.NullInt64{Int64: c.CompletedAt.UnixMilli(), Valid: true}
	}
	return []any{
		c.ID, c.Type, c.Title, c.TargetML, c.DurationDays, c.StartDate.UnixMilli(),
		boolToInt(c.IsActive), boolToInt(c.IsCompleted), c.CurrentStreak, string(violations), completed,
	}, nil
}

func scanChallenge(rows *sql.Rows) (model.Challenge, error) {
	var (
		c                     model.Challenge
		startMs               int64
		active, completedFlag int
		violations            string
		completedAt           sql.NullInt64
	)
	if err := rows.Scan(&c.ID, &c.Type, &c.Title, &c.TargetML, &c.DurationDays, &startMs,
		&active, &completedFlag, &c.CurrentStreak, &violations, &completedAt); err != nil {
		return model.Challenge{}, fmt.Errorf("scan challenge: %w", err)
	}

	var ms []int64
	if err := json.Unmarshal([]byte(violations), &ms); err != nil {
		return model.Challenge{}, fmt.Errorf("decode violations of challenge %s: %w", c.ID, err)
	}
	if len(ms) > 0 {
		c.Violations = make([]time.Time, len(ms))
		for i, v := range ms {
			c.Violations[i] = time.UnixMilli(v).UTC()
		}
	}

	c.StartDate = time.UnixMilli(startMs).UTC()
	c.IsActive = active == 1
	c.IsCompleted = completedFlag == 1
	if completedAt.Valid {
		t := time.UnixMilli(completedAt.Int64).UTC()
		c.CompletedAt = &t
	}
	return c, nil
}
