package sync

import (
	"github.com/aquatrack/hydrosync/internal/codec"
	"github.com/aquatrack/hydrosync/internal/identity"
	"github.com/aquatrack/hydrosync/internal/local"
	"github.com/aquatrack/hydrosync/internal/model"
	"github.com/aquatrack/hydrosync/internal/remote"
)

// NewWaterEntrySyncer returns the union-merge syncer for water entries.
func NewWaterEntrySyncer(p identity.Provider, store local.WaterEntryStore, docs remote.DocumentStore) Syncer {
	return &unionSyncer[model.WaterEntry]{
		family:      remote.WaterEntriesCollection,
		identity:    p,
		docs:        docs,
		id:          func(e model.WaterEntry) string { return codec.WaterEntryID(e.ID) },
		encode:      codec.EncodeWaterEntry,
		decode:      codec.DecodeWaterEntry,
		listLocal:   store.ListWaterEntries,
		insertLocal: store.InsertWaterEntry,
	}
}

// NewChallengeSyncer returns the union-merge syncer for challenges.
func NewChallengeSyncer(p identity.Provider, store local.ChallengeStore, docs remote.DocumentStore) Syncer {
	return &unionSyncer[model.Challenge]{
		family:      remote.ChallengesCollection,
		identity:    p,
		docs:        docs,
		id:          func(c model.Challenge) string { return c.ID },
		encode:      codec.EncodeChallenge,
		decode:      codec.DecodeChallenge,
		listLocal:   store.ListChallenges,
		insertLocal: store.InsertChallenge,
	}
}

// NewSettingsSyncer returns the singleton syncer for settings.
func NewSettingsSyncer(p identity.Provider, store local.SettingsStore, docs remote.DocumentStore) Syncer {
	return &singletonSyncer[model.Settings]{
		family:    remote.SettingsCollection,
		identity:  p,
		docs:      docs,
		encode:    codec.EncodeSettings,
		decode:    codec.DecodeSettings,
		getLocal:  store.GetSettings,
		saveLocal: store.UpsertSettings,
	}
}

// NewProfileSyncer returns the singleton syncer for the profile.
func NewProfileSyncer(p identity.Provider, store local.ProfileStore, docs remote.DocumentStore) Syncer {
	return &singletonSyncer[model.Profile]{
		family:    remote.ProfileCollection,
		identity:  p,
		docs:      docs,
		encode:    codec.EncodeProfile,
		decode:    codec.DecodeProfile,
		getLocal:  store.GetProfile,
		saveLocal: store.UpsertProfile,
	}
}

// DefaultSyncers returns every family syncer in the order they must run.
func DefaultSyncers(p identity.Provider, store local.Store, docs remote.DocumentStore) []Syncer {
	return []Syncer{
		NewWaterEntrySyncer(p, store, docs),
		NewSettingsSyncer(p, store, docs),
		NewProfileSyncer(p, store, docs),
		NewChallengeSyncer(p, store, docs),
		NewAchievementSyncer(p, store, docs),
	}
}
