package model

import (
	"errors"
	"time"
)

// Profile holds the per-user gamification counters. There is exactly one per user.
type Profile struct {
	DisplayName   string
	Level         int
	XP            int64
	CurrentStreak int
	LongestStreak int
	TotalIntakeML int64
	UpdatedAt     time.Time
}

// Validate checks the profile counters.
func (p Profile) Validate() error {
	if p.Level < 0 || p.XP < 0 || p.CurrentStreak < 0 || p.LongestStreak < 0 || p.TotalIntakeML < 0 {
		return errors.New("profile counters cannot be negative")
	}
	return nil
}
