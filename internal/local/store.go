// Package local defines the embedded on-device store that is the source of
// truth while offline. Implementations live in subpackages.
package local

import (
	"context"

	"github.com/aquatrack/hydrosync/internal/model"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store

// WaterEntryStore persists water entries.
type WaterEntryStore interface {
	// ListWaterEntries returns every entry ordered by timestamp.
	ListWaterEntries(ctx context.Context) ([]model.WaterEntry, error)
	// InsertWaterEntry stores the entry unless one with the same id exists.
	// It reports whether a row was written.
	InsertWaterEntry(ctx context.Context, e model.WaterEntry) (bool, error)
}

// SettingsStore persists the settings singleton.
type SettingsStore interface {
	// GetSettings returns nil when settings were never saved.
	GetSettings(ctx context.Context) (*model.Settings, error)
	UpsertSettings(ctx context.Context, s model.Settings) error
}

// ProfileStore persists the profile singleton.
type ProfileStore interface {
	// GetProfile returns nil when no profile was ever saved.
	GetProfile(ctx context.Context) (*model.Profile, error)
	UpsertProfile(ctx context.Context, p model.Profile) error
}

// ChallengeStore persists challenges.
type ChallengeStore interface {
	ListChallenges(ctx context.Context) ([]model.Challenge, error)
	// InsertChallenge stores the challenge unless one with the same id exists.
	InsertChallenge(ctx context.Context, c model.Challenge) (bool, error)
	UpsertChallenge(ctx context.Context, c model.Challenge) error
}

// AchievementStore persists achievements.
type AchievementStore interface {
	ListAchievements(ctx context.Context) ([]model.Achievement, error)
	// GetAchievement returns nil when the achievement is unknown.
	GetAchievement(ctx context.Context, id string) (*model.Achievement, error)
	UpsertAchievement(ctx context.Context, a model.Achievement) error
}

// Store is the complete local store.
type Store interface {
	WaterEntryStore
	SettingsStore
	ProfileStore
	ChallengeStore
	AchievementStore

	// Ping checks that the store is usable.
	Ping(ctx context.Context) error
	// Close releases the underlying database.
	Close() error
}
