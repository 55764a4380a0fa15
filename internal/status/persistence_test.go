package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-123"

func TestFileStatusPersistence_SaveAndLoad(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	persistence := NewFileStatusPersistence(tmpDir)
	require.NotNil(t, persistence)

	now := time.Now().UTC().Truncate(time.Second)
	testStatus := &SyncStatus{
		Phase:        SyncPhaseSuccess,
		LastAttempt:  &now,
		AttemptCount: 0,
		LastSyncTime: &now,
	}

	ctx := context.Background()
	err := persistence.SaveStatus(ctx, testUserID, testStatus)
	require.NoError(t, err)

	expectedPath := filepath.Join(tmpDir, testUserID, StatusFileName)
	_, err = os.Stat(expectedPath)
	require.NoError(t, err)

	loaded, err := persistence.LoadStatus(ctx, testUserID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, testStatus.Phase, loaded.Phase)
	require.NotNil(t, loaded.LastSyncTime)
	require.True(t, now.Equal(*loaded.LastSyncTime))
}

func TestFileStatusPersistence_LoadNonExistent(t *testing.T) {
	t.Parallel()

	persistence := NewFileStatusPersistence(t.TempDir())

	loaded, err := persistence.LoadStatus(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, SyncPhaseIdle, loaded.Phase)
	require.Equal(t, "", loaded.Message)
}

func TestFileStatusPersistence_UpdateStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	persistence := NewFileStatusPersistence(t.TempDir())

	require.NoError(t, persistence.SaveStatus(ctx, testUserID, &SyncStatus{Phase: SyncPhaseSyncing, AttemptCount: 1}))
	require.NoError(t, persistence.SaveStatus(ctx, testUserID, &SyncStatus{Phase: SyncPhaseError, Message: "remote unavailable", AttemptCount: 1}))

	loaded, err := persistence.LoadStatus(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, SyncPhaseError, loaded.Phase)
	assert.Equal(t, "remote unavailable", loaded.Message)
	assert.Equal(t, 1, loaded.AttemptCount)
}

func TestFileStatusPersistence_AtomicWrite(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	ctx := context.Background()
	persistence := NewFileStatusPersistence(tmpDir)

	require.NoError(t, persistence.SaveStatus(ctx, testUserID, &SyncStatus{Phase: SyncPhaseSuccess}))

	_, err := os.Stat(filepath.Join(tmpDir, testUserID, StatusFileName+".tmp"))
	assert.True(t, os.IsNotExist(err), "temporary file must not be left behind")
}

func TestFileStatusPersistence_UsersAreSeparate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	persistence := NewFileStatusPersistence(t.TempDir())

	require.NoError(t, persistence.SaveStatus(ctx, "alice", &SyncStatus{Phase: SyncPhaseSuccess}))
	require.NoError(t, persistence.SaveStatus(ctx, "bob", &SyncStatus{Phase: SyncPhaseError, Message: "x"}))

	alice, err := persistence.LoadStatus(ctx, "alice")
	require.NoError(t, err)
	bob, err := persistence.LoadStatus(ctx, "bob")
	require.NoError(t, err)

	assert.Equal(t, SyncPhaseSuccess, alice.Phase)
	assert.Equal(t, SyncPhaseError, bob.Phase)
}

func TestFileStatusPersistence_RejectsPathLikeUserIDs(t *testing.T) {
	t.Parallel()

	persistence := NewFileStatusPersistence(t.TempDir())
	ctx := context.Background()

	for _, uid := range []string{"", "..", "a/b", "../escape"} {
		assert.Error(t, persistence.SaveStatus(ctx, uid, &SyncStatus{Phase: SyncPhaseIdle}), uid)
		_, err := persistence.LoadStatus(ctx, uid)
		assert.Error(t, err, uid)
	}
}

func TestFileStatusPersistence_CorruptFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, testUserID), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, testUserID, StatusFileName), []byte("{not json"), 0600))

	_, err := NewFileStatusPersistence(tmpDir).LoadStatus(context.Background(), testUserID)
	assert.ErrorContains(t, err, "failed to unmarshal")
}
