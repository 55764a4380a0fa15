package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aquatrack/hydrosync/internal/model"
)

// ListAchievements returns every achievement ordered by id.
func (s *Store) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, is_unlocked, unlocked_at_ms, progress
		FROM achievements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query achievements: %w", err)
	}
	defer rows.Close()

	var out []model.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate achievements: %w", err)
	}
	return out, nil
}

// GetAchievement returns the achievement or nil when it is unknown.
func (s *Store) GetAchievement(ctx context.Context, id string) (*model.Achievement, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, is_unlocked, unlocked_at_ms, progress
		FROM achievements WHERE id = ?`, id)
	a, err := scanAchievement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertAchievement inserts or updates the achievement. A stored unlock is
// never reverted: writing a locked achievement over an unlocked one keeps the
// unlock and its timestamp.
func (s *Store) UpsertAchievement(ctx context.Context, a model.Achievement) error {
	if err := a.Validate(); err != nil {
		return err
	}
	var unlockedAt sql.NullInt64
	if a.UnlockedAt != nil {
		unlockedAt = sql.NullInt64{Int64: a.UnlockedAt.UnixMilli(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO achievements (id, title, description, is_unlocked, unlocked_at_ms, progress)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			is_unlocked = MAX(achievements.is_unlocked, excluded.is_unlocked),
			unlocked_at_ms = CASE
				WHEN excluded.is_unlocked = 1 THEN excluded.unlocked_at_ms
				ELSE achievements.unlocked_at_ms
			END,
			progress = excluded.progress`,
		a.ID, a.Title, a.Description, boolToInt(a.IsUnlocked), unlockedAt, a.Progress)
	if err != nil {
		return fmt.Errorf("upsert achievement %s: %w", a.ID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAchievement(row scanner) (model.Achievement, error) {
	var (
		a          model.Achievement
		unlocked   int
		unlockedAt sql.NullInt64
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &unlocked, &unlockedAt, &a.Progress); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Achievement{}, err
		}
		return model.Achievement{}, fmt.Errorf("scan achievement: %w", err)
	}
	a.IsUnlocked = unlocked == 1
	if unlockedAt.Valid {
		t := time.UnixMilli(unlockedAt.Int64).UTC()
		a.UnlockedAt = &t
	}
	return a, nil
}
