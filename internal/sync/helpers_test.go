package sync

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aquatrack/hydrosync/internal/codec"
	"github.com/aquatrack/hydrosync/internal/identity"
	"github.com/aquatrack/hydrosync/internal/local/sqlite"
	"github.com/aquatrack/hydrosync/internal/model"
	"github.com/aquatrack/hydrosync/internal/remote"
	"github.com/aquatrack/hydrosync/internal/remote/memory"
)

const testUser = "u1"

var t0 = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	ctx   context.Context
	id    identity.Provider
	store *sqlite.Store
	docs  remote.DocumentStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return &testEnv{
		ctx:   context.Background(),
		id:    identity.Static(testUser),
		store: store,
		docs:  memory.New(),
	}
}

func waterEntry(id int64, amount int) model.WaterEntry {
	ts := t0.Add(time.Duration(id) * time.Minute)
	return model.WaterEntry{ID: id, AmountML: amount, DrinkType: model.DefaultDrinkType, Timestamp: ts, CreatedAt: ts}
}

func (e *testEnv) putRemote(t *testing.T, family, id string, doc remote.Document) {
	t.Helper()
	require.NoError(t, e.docs.Set(e.ctx, remote.FamilyRef(testUser, family, id), doc))
}

func (e *testEnv) remoteDoc(t *testing.T, family, id string) (remote.Document, bool) {
	t.Helper()
	doc, ok, err := e.docs.Get(e.ctx, remote.FamilyRef(testUser, family, id))
	require.NoError(t, err)
	return doc, ok
}

func (e *testEnv) remoteIDs(t *testing.T, family string) []string {
	t.Helper()
	snaps, err := e.docs.List(e.ctx, remote.FamilyCollection(testUser, family))
	require.NoError(t, err)
	ids := make([]string, 0, len(snaps))
	for _, s := range snaps {
		ids = append(ids, s.ID)
	}
	return ids
}

func (e *testEnv) putRemoteWater(t *testing.T, entry model.WaterEntry) {
	t.Helper()
	e.putRemote(t, remote.WaterEntriesCollection, codec.WaterEntryID(entry.ID), codec.EncodeWaterEntry(entry))
}
