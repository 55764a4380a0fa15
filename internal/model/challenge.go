package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Challenge is a user-started goal spanning several days. It is synchronized
// as an opaque blob.
type Challenge struct {
	ID            string
	Type          string
	Title         string
	TargetML      int
	DurationDays  int
	StartDate     time.Time
	IsActive      bool
	IsCompleted   bool
	CurrentStreak int
	Violations    []time.Time
	CompletedAt   *time.Time
}

// NewChallenge creates an active challenge with a fresh id.
func NewChallenge(challengeType, title string, targetML, durationDays int, start time.Time) Challenge {
	return Challenge{
		ID:           uuid.NewString(),
		Type:         challengeType,
		Title:        title,
		TargetML:     targetML,
		DurationDays: durationDays,
		StartDate:    start.UTC().Truncate(time.Millisecond),
		IsActive:     true,
	}
}

// Validate checks the challenge fields.
func (c Challenge) Validate() error {
	if c.ID == "" {
		return errors.New("challenge id is required")
	}
	if c.DurationDays < 0 {
		return fmt.Errorf("challenge %s: duration cannot be negative, got %d", c.ID, c.DurationDays)
	}
	if c.TargetML < 0 {
		return fmt.Errorf("challenge %s: target cannot be negative", c.ID)
	}
	return nil
}
