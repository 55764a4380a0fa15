package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquatrack/hydrosync/internal/codec"
	"github.com/aquatrack/hydrosync/internal/model"
	"github.com/aquatrack/hydrosync/internal/remote"
)

func testSettings(goal int) model.Settings {
	s := model.DefaultSettings()
	s.DailyGoalML = goal
	s.UpdatedAt = t0
	return s
}

func TestSettingsSyncPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		local      *model.Settings
		remote     *model.Settings
		wantResult Result
		wantLocal  *int
		wantRemote *int
	}{
		{
			name:       "both absent is a no-op",
			wantResult: Result{Family: remote.SettingsCollection},
		},
		{
			name:       "remote only is downloaded",
			remote:     ptr(testSettings(3000)),
			wantResult: Result{Family: remote.SettingsCollection, Downloaded: 1},
			wantLocal:  ptr(3000),
			wantRemote: ptr(3000),
		},
		{
			name:       "local only is uploaded",
			local:      ptr(testSettings(1500)),
			wantResult: Result{Family: remote.SettingsCollection, Uploaded: 1},
			wantLocal:  ptr(1500),
			wantRemote: ptr(1500),
		},
		{
			name:       "both present pushes local over remote",
			local:      ptr(testSettings(1500)),
			remote:     ptr(testSettings(3000)),
			wantResult: Result{Family: remote.SettingsCollection, Uploaded: 1},
			wantLocal:  ptr(1500),
			wantRemote: ptr(1500),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)
			if tt.local != nil {
				require.NoError(t, env.store.UpsertSettings(env.ctx, *tt.local))
			}
			if tt.remote != nil {
				env.putRemote(t, remote.SettingsCollection, remote.SingletonID, codec.EncodeSettings(*tt.remote))
			}

			res, err := NewSettingsSyncer(env.id, env.store, env.docs).Sync(env.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, *res)

			got, err := env.store.GetSettings(env.ctx)
			require.NoError(t, err)
			if tt.wantLocal == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.wantLocal, got.DailyGoalML)
			}

			doc, ok := env.remoteDoc(t, remote.SettingsCollection, remote.SingletonID)
			if tt.wantRemote == nil {
				assert.False(t, ok)
			} else {
				require.True(t, ok)
				assert.Equal(t, int64(*tt.wantRemote), doc["dailyGoalMl"])
			}
		})
	}
}

func TestSettingsSyncMergeKeepsUnknownRemoteFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.NoError(t, env.store.UpsertSettings(env.ctx, testSettings(1800)))

	doc := codec.EncodeSettings(testSettings(2500))
	doc["watchFaceColor"] = "teal"
	env.putRemote(t, remote.SettingsCollection, remote.SingletonID, doc)

	_, err := NewSettingsSyncer(env.id, env.store, env.docs).Sync(env.ctx)
	require.NoError(t, err)

	got, _ := env.remoteDoc(t, remote.SettingsCollection, remote.SingletonID)
	assert.Equal(t, int64(1800), got["dailyGoalMl"])
	assert.Equal(t, "teal", got["watchFaceColor"])
}

func TestProfileSyncFirstClaim(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	remoteProfile := model.Profile{DisplayName: "Cloud", Level: 7, XP: 7000, UpdatedAt: t0}
	env.putRemote(t, remote.ProfileCollection, remote.SingletonID, codec.EncodeProfile(remoteProfile))

	syncer := NewProfileSyncer(env.id, env.store, env.docs)

	res, err := syncer.Sync(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Downloaded)

	got, err := env.store.GetProfile(env.ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, remoteProfile, *got)

	// Once claimed, the local copy is authoritative.
	got.XP = 7100
	require.NoError(t, env.store.UpsertProfile(env.ctx, *got))

	res, err = syncer.Sync(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Uploaded)

	doc, _ := env.remoteDoc(t, remote.ProfileCollection, remote.SingletonID)
	assert.Equal(t, int64(7100), doc["xp"])
}

func TestProfileSyncSkipsMalformedRemote(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.putRemote(t, remote.ProfileCollection, remote.SingletonID, remote.Document{"level": "seven"})

	res, err := NewProfileSyncer(env.id, env.store, env.docs).Sync(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)

	got, err := env.store.GetProfile(env.ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettingsDownloadOverwritesLocal(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	require.NoError(t, env.store.UpsertSettings(env.ctx, testSettings(1000)))
	env.putRemote(t, remote.SettingsCollection, remote.SingletonID, codec.EncodeSettings(testSettings(2200)))

	syncer := NewSettingsSyncer(env.id, env.store, env.docs)
	res, err := syncer.Download(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Downloaded)

	got, err := env.store.GetSettings(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2200, got.DailyGoalML)
}

func TestSingletonUploadWithoutLocalIsNoop(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	res, err := NewProfileSyncer(env.id, env.store, env.docs).Upload(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Uploaded)

	_, ok := env.remoteDoc(t, remote.ProfileCollection, remote.SingletonID)
	assert.False(t, ok)
}

func ptr[T any](v T) *T {
	return &v
}
