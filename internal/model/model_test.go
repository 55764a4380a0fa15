package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaterEntryValidate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entry   WaterEntry
		wantErr string
	}{
		{
			name:  "valid entry",
			entry: NewWaterEntry(250, "", now),
		},
		{
			name:    "zero id",
			entry:   WaterEntry{AmountML: 250, Timestamp: now},
			wantErr: "id must be positive",
		},
		{
			name:    "negative amount",
			entry:   WaterEntry{ID: 1, AmountML: -5, Timestamp: now},
			wantErr: "amount must be positive",
		},
		{
			name:    "missing timestamp",
			entry:   WaterEntry{ID: 1, AmountML: 5},
			wantErr: "timestamp is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.entry.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewWaterEntryDefaults(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.FixedZone("CET", 3600))
	e := NewWaterEntry(300, "", at)

	assert.Equal(t, DefaultDrinkType, e.DrinkType)
	assert.Equal(t, time.UTC, e.Timestamp.Location())
	assert.Positive(t, e.ID)
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	valid := DefaultSettings()
	require.NoError(t, valid.Validate())

	badUnit := valid
	badUnit.Unit = "cups"
	assert.ErrorContains(t, badUnit.Validate(), "unsupported unit")

	badClock := valid
	badClock.WakeTime = "25:00"
	assert.ErrorContains(t, badClock.Validate(), "invalid time of day")

	badGoal := valid
	badGoal.DailyGoalML = 0
	assert.ErrorContains(t, badGoal.Validate(), "daily goal")
}

func TestNewChallengeAssignsUUID(t *testing.T) {
	t.Parallel()

	c := NewChallenge("streak", "Seven days", 2000, 7, time.Now())
	_, err := uuid.Parse(c.ID)
	require.NoError(t, err)
	assert.True(t, c.IsActive)
	assert.False(t, c.IsCompleted)
	assert.NoError(t, c.Validate())
}

func TestChallengeValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Challenge{ID: "c1", IsActive: true}.Validate(), "unset fields are allowed")
	assert.ErrorContains(t, Challenge{}.Validate(), "id is required")
	assert.ErrorContains(t, Challenge{ID: "c1", DurationDays: -1}.Validate(), "duration cannot be negative")
	assert.ErrorContains(t, Challenge{ID: "c1", TargetML: -1}.Validate(), "target cannot be negative")
}

func TestAchievementUnlockIsMonotonic(t *testing.T) {
	t.Parallel()

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Achievement{ID: "first_sip"}

	a.Unlock(first)
	a.Unlock(first.Add(time.Hour))

	assert.True(t, a.IsUnlocked)
	require.NotNil(t, a.UnlockedAt)
	assert.Equal(t, first, *a.UnlockedAt)
}
