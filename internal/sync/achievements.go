package sync

import (
	"context"

	"github.com/aquatrack/hydrosync/internal/codec"
	"github.com/aquatrack/hydrosync/internal/identity"
	"github.com/aquatrack/hydrosync/internal/local"
	"github.com/aquatrack/hydrosync/internal/model"
	"github.com/aquatrack/hydrosync/internal/remote"
)

// achievementSyncer propagates unlocks in both directions. Locked
// achievements are never written to either side.
type achievementSyncer struct {
	identity identity.Provider
	store    local.AchievementStore
	docs     remote.DocumentStore
}

// NewAchievementSyncer returns the syncer for achievements.
func NewAchievementSyncer(p identity.Provider, store local.AchievementStore, docs remote.DocumentStore) Syncer {
	return &achievementSyncer{identity: p, store: store, docs: docs}
}

func (*achievementSyncer) Family() string {
	return remote.AchievementsCollection
}

func (a *achievementSyncer) Sync(ctx context.Context) (*Result, error) {
	uid, err := currentUser(ctx, a.identity, remote.AchievementsCollection)
	if err != nil {
		return nil, err
	}

	result := &Result{Family: remote.AchievementsCollection}
	if err := a.applyRemoteUnlocks(ctx, uid, result); err != nil {
		return result, err
	}
	if err := a.pushLocalUnlocks(ctx, uid, result); err != nil {
		return result, err
	}
	return result, nil
}

func (a *achievementSyncer) Upload(ctx context.Context) (*Result, error) {
	uid, err := currentUser(ctx, a.identity, remote.AchievementsCollection)
	if err != nil {
		return nil, err
	}
	result := &Result{Family: remote.AchievementsCollection}
	return result, a.pushLocalUnlocks(ctx, uid, result)
}

func (a *achievementSyncer) Download(ctx context.Context) (*Result, error) {
	uid, err := currentUser(ctx, a.identity, remote.AchievementsCollection)
	if err != nil {
		return nil, err
	}
	result := &Result{Family: remote.AchievementsCollection}
	return result, a.applyRemoteUnlocks(ctx, uid, result)
}

// applyRemoteUnlocks writes every unlocked remote achievement to the local
// store, whatever the local state is.
func (a *achievementSyncer) applyRemoteUnlocks(ctx context.Context, uid string, result *Result) error {
	snaps, err := listRemote(ctx, a.docs, uid, remote.AchievementsCollection)
	if err != nil {
		return err
	}

	for _, snap := range snaps {
		ach, err := decodeListed(snap, codec.DecodeAchievement)
		if err != nil {
			skipUndecodable(remote.AchievementsCollection, snap.ID, err)
			result.Skipped++
			continue
		}
		if !ach.IsUnlocked {
			continue
		}
		if err := a.store.UpsertAchievement(ctx, ach); err != nil {
			return localError(remote.AchievementsCollection, "write", err)
		}
		result.Downloaded++
	}
	return nil
}

// pushLocalUnlocks merge-writes every unlocked local achievement.
func (a *achievementSyncer) pushLocalUnlocks(ctx context.Context, uid string, result *Result) error {
	all, err := a.store.ListAchievements(ctx)
	if err != nil {
		return localError(remote.AchievementsCollection, "read", err)
	}

	for _, ach := range unlocked(all) {
		ref := remote.FamilyRef(uid, remote.AchievementsCollection, ach.ID)
		if err := a.docs.Set(ctx, ref, codec.EncodeAchievement(ach), remote.Merge()); err != nil {
			return remoteError(remote.AchievementsCollection, "write", err)
		}
		result.Uploaded++
	}
	return nil
}

func unlocked(all []model.Achievement) []model.Achievement {
	out := make([]model.Achievement, 0, len(all))
	for _, a := range all {
		if a.IsUnlocked {
			out = append(out, a)
		}
	}
	return out
}
