package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aquatrack/hydrosync/internal/model"
)

// GetSettings returns the stored settings or nil when none were saved.
func (s *Store) GetSettings(ctx context.Context) (*model.Settings, error) {
	var (
		out       model.Settings
		reminders int
		updatedMs int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT daily_goal_ml, unit, reminders_enabled, reminder_interval_minutes,
		       wake_time, sleep_time, updated_at_ms
		FROM settings WHERE id = 1`).
		Scan(&out.DailyGoalML, &out.Unit, &reminders, &out.ReminderIntervalMinutes,
			&out.WakeTime, &out.SleepTime, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	out.RemindersEnabled = reminders == 1
	out.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return &out, nil
}

// UpsertSettings replaces the stored settings.
func (s *Store) UpsertSettings(ctx context.Context, st model.Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, daily_goal_ml, unit, reminders_enabled, reminder_interval_minutes,
		                      wake_time, sleep_time, updated_at_ms)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			daily_goal_ml = excluded.daily_goal_ml,
			unit = excluded.unit,
			reminders_enabled = excluded.reminders_enabled,
			reminder_interval_minutes = excluded.reminder_interval_minutes,
			wake_time = excluded.wake_time,
			sleep_time = excluded.sleep_time,
			updated_at_ms = excluded.updated_at_ms`,
		st.DailyGoalML, st.Unit, boolToInt(st.RemindersEnabled), st.ReminderIntervalMinutes,
		st.WakeTime, st.SleepTime, st.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

// GetProfile returns the stored profile or nil when none was saved.
func (s *Store) GetProfile(ctx context.Context) (*model.Profile, error) {
	var (
		out       model.Profile
		updatedMs int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT display_name, level, xp, current_streak, longest_streak, total_intake_ml, updated_at_ms
		FROM profile WHERE id = 1`).
		Scan(&out.DisplayName, &out.Level, &out.XP, &out.CurrentStreak, &out.LongestStreak,
			&out.TotalIntakeML, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	out.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return &out, nil
}

// UpsertProfile replaces the stored profile.
func (s *Store) UpsertProfile(ctx context.Context, p model.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile (id, display_name, level, xp, current_streak, longest_streak,
		                     total_intake_ml, updated_at_ms)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			display_name = excluded.display_name,
			level = excluded.level,
			xp = excluded.xp,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			total_intake_ml = excluded.total_intake_ml,
			updated_at_ms = excluded.updated_at_ms`,
		p.DisplayName, p.Level, p.XP, p.CurrentStreak, p.LongestStreak, p.TotalIntakeML,
		p.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
