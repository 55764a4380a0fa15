package model

import (
	"fmt"
	"regexp"
	"time"
)

// Volume units accepted in Settings.
const (
	UnitMilliliters = "ml"
	UnitOunces      = "oz"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Settings holds the per-user preferences. There is exactly one per user.
type Settings struct {
	DailyGoalML             int
	Unit                    string
	RemindersEnabled        bool
	ReminderIntervalMinutes int
	WakeTime                string
	SleepTime               string
	UpdatedAt               time.Time
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		DailyGoalML:             2000,
		Unit:                    UnitMilliliters,
		RemindersEnabled:        true,
		ReminderIntervalMinutes: 60,
		WakeTime:                "07:00",
		SleepTime:               "23:00",
	}
}

// Validate checks the settings values.
func (s Settings) Validate() error {
	if s.DailyGoalML <= 0 {
		return fmt.Errorf("daily goal must be positive, got %d", s.DailyGoalML)
	}
	if s.Unit != UnitMilliliters && s.Unit != UnitOunces {
		return fmt.Errorf("unsupported unit %q", s.Unit)
	}
	if s.ReminderIntervalMinutes < 0 {
		return fmt.Errorf("reminder interval cannot be negative, got %d", s.ReminderIntervalMinutes)
	}
	for _, v := range []string{s.WakeTime, s.SleepTime} {
		if v != "" && !clockPattern.MatchString(v) {
			return fmt.Errorf("invalid time of day %q, expected HH:MM", v)
		}
	}
	return nil
}
