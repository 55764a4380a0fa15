package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aquatrack/hydrosync/internal/codec"
	"github.com/aquatrack/hydrosync/internal/identity"
	localmocks "github.com/aquatrack/hydrosync/internal/local/mocks"
	"github.com/aquatrack/hydrosync/internal/model"
	"github.com/aquatrack/hydrosync/internal/remote"
	remotemocks "github.com/aquatrack/hydrosync/internal/remote/mocks"
)

func achievement(id string, unlockedAt *time.Time) model.Achievement {
	a := model.Achievement{ID: id, Title: id}
	if unlockedAt != nil {
		a.Unlock(*unlockedAt)
	}
	return a
}

func TestAchievementSyncUnlocksFlowBothWays(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	remoteUnlock := t0.Add(time.Hour)
	localUnlock := t0.Add(2 * time.Hour)

	// Remote unlocked, local locked: the unlock is applied locally.
	require.NoError(t, env.store.UpsertAchievement(env.ctx, achievement("hydrated", nil)))
	env.putRemote(t, remote.AchievementsCollection, "hydrated", codec.EncodeAchievement(achievement("hydrated", &remoteUnlock)))

	// Local unlocked, remote locked: the unlock is pushed.
	require.NoError(t, env.store.UpsertAchievement(env.ctx, achievement("early_bird", &localUnlock)))
	env.putRemote(t, remote.AchievementsCollection, "early_bird", codec.EncodeAchievement(achievement("early_bird", nil)))

	// Locked on both sides: nothing moves.
	require.NoError(t, env.store.UpsertAchievement(env.ctx, achievement("marathon", nil)))
	env.putRemote(t, remote.AchievementsCollection, "night_owl", codec.EncodeAchievement(achievement("night_owl", nil)))

	res, err := NewAchievementSyncer(env.id, env.store, env.docs).Sync(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Downloaded)
	// Both local unlocks are merge-written, including the one just applied.
	assert.Equal(t, 2, res.Uploaded)

	hydrated, err := env.store.GetAchievement(env.ctx, "hydrated")
	require.NoError(t, err)
	assert.True(t, hydrated.IsUnlocked)
	assert.Equal(t, remoteUnlock, *hydrated.UnlockedAt)

	doc, _ := env.remoteDoc(t, remote.AchievementsCollection, "early_bird")
	assert.Equal(t, true, doc["isUnlocked"])

	_, ok := env.remoteDoc(t, remote.AchievementsCollection, "marathon")
	assert.False(t, ok, "locked achievements are never uploaded")

	nightOwl, err := env.store.GetAchievement(env.ctx, "night_owl")
	require.NoError(t, err)
	assert.Nil(t, nightOwl, "locked remote achievements are not downloaded")
}

func TestAchievementSyncNeverRelocks(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	unlockedAt := t0
	require.NoError(t, env.store.UpsertAchievement(env.ctx, achievement("first_sip", &unlockedAt)))
	env.putRemote(t, remote.AchievementsCollection, "first_sip", codec.EncodeAchievement(achievement("first_sip", nil)))

	syncer := NewAchievementSyncer(env.id, env.store, env.docs)
	for range 2 {
		_, err := syncer.Sync(env.ctx)
		require.NoError(t, err)
	}

	got, err := env.store.GetAchievement(env.ctx, "first_sip")
	require.NoError(t, err)
	assert.True(t, got.IsUnlocked)

	doc, _ := env.remoteDoc(t, remote.AchievementsCollection, "first_sip")
	assert.Equal(t, true, doc["isUnlocked"])
}

func TestAchievementSyncStopsBeforeUploadOnLocalFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := localmocks.NewMockStore(ctrl)
	docs := remotemocks.NewMockDocumentStore(ctrl)

	unlockedAt := t0
	docs.EXPECT().
		List(gomock.Any(), remote.FamilyCollection(testUser, remote.AchievementsCollection)).
		Return([]remote.Snapshot{{ID: "a", Data: codec.EncodeAchievement(achievement("a", &unlockedAt))}}, nil)
	store.EXPECT().UpsertAchievement(gomock.Any(), gomock.Any()).Return(errors.New("database is locked"))

	_, err := NewAchievementSyncer(identity.Static(testUser), store, docs).Sync(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindLocalStoreError, KindOf(err))
}
