package model

import (
	"errors"
	"time"
)

// Achievement is a badge that, once unlocked, stays unlocked.
type Achievement struct {
	ID          string
	Title       string
	Description string
	IsUnlocked  bool
	UnlockedAt  *time.Time
	Progress    int
}

// Unlock marks the achievement as unlocked. The first unlock time is kept.
func (a *Achievement) Unlock(now time.Time) {
	if a.IsUnlocked {
		return
	}
	t := now.UTC().Truncate(time.Millisecond)
	a.IsUnlocked = true
	a.UnlockedAt = &t
}

// Validate checks the achievement fields.
func (a Achievement) Validate() error {
	if a.ID == "" {
		return errors.New("achievement id is required")
	}
	if a.Progress < 0 {
		return errors.New("achievement progress cannot be negative")
	}
	return nil
}
