package postgres

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquatrack/hydrosync/database"
	"github.com/aquatrack/hydrosync/internal/remote"
)

func TestDecodeDocumentKeepsIntegers(t *testing.T) {
	t.Parallel()

	doc, err := decodeDocument([]byte(`{"timestamp": 1714552200123, "note": "x"}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("1714552200123"), doc["timestamp"])
	assert.Equal(t, "x", doc["note"])
}

func TestDecodeDocumentNull(t *testing.T) {
	t.Parallel()

	doc, err := decodeDocument([]byte(`null`))
	require.NoError(t, err)
	assert.Equal(t, remote.Document{}, doc)
}

func TestSnapshotFromRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want remote.Snapshot
	}{
		{name: "object", raw: `{"amountMl": 250}`, want: remote.Snapshot{ID: "1", Data: remote.Document{"amountMl": json.Number("250")}}},
		{name: "array keeps id only", raw: `[1, 2]`, want: remote.Snapshot{ID: "1"}},
		{name: "scalar keeps id only", raw: `"text"`, want: remote.Snapshot{ID: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, snapshotFromRow("users/u1/waterEntries", "1", []byte(tt.raw)))
		})
	}
}

func TestNewRequiresPool(t *testing.T) {
	t.Parallel()

	_, err := New()
	assert.Error(t, err)

	_, err = New(WithConnectionPool(nil))
	assert.Error(t, err)
}

func TestStoreAgainstPostgres(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	pool, cleanup := database.SetupTestDBContainer(t, ctx)
	t.Cleanup(cleanup)

	s, err := New(WithConnectionPool(pool))
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))

	ref := remote.FamilyRef("u1", remote.ProfileCollection, remote.SingletonID)

	_, ok, err := s.Get(ctx, ref)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, ref, remote.Document{"level": 3, "xp": int64(1200)}))
	require.NoError(t, s.Set(ctx, ref, remote.Document{"xp": int64(1500)}, remote.Merge()))

	doc, ok, err := s.Get(ctx, ref)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, json.Number("3"), doc["level"])
	assert.Equal(t, json.Number("1500"), doc["xp"])

	require.NoError(t, s.Set(ctx, ref, remote.Document{"level": 4}))
	doc, _, err = s.Get(ctx, ref)
	require.NoError(t, err)
	assert.NotContains(t, doc, "xp")

	coll := remote.FamilyCollection("u1", remote.WaterEntriesCollection)
	for _, id := range []string{"2", "1"} {
		require.NoError(t, s.Set(ctx, remote.Ref{Collection: coll, ID: id}, remote.Document{"amountMl": 250}))
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO documents (collection, doc_id, data) VALUES ($1, $2, '[1, 2]'::jsonb)`, coll, "3")
	require.NoError(t, err)

	snaps, err := s.List(ctx, coll)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, "1", snaps[0].ID)
	assert.Equal(t, "2", snaps[1].ID)
	assert.Equal(t, remote.Snapshot{ID: "3"}, snaps[2], "a malformed row keeps its id")
}
