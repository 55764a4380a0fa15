package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/aquatrack/hydrosync/internal/remote"
)

func TestToDocumentNormalizesNestedValues(t *testing.T) {
	t.Parallel()

	in := bson.M{
		"violations": bson.A{int64(1), int32(2)},
		"nested":     bson.M{"a": bson.A{"x"}},
		"ordered":    bson.D{{Key: "k", Value: "v"}},
		"at":         bson.DateTime(1714552200123),
	}

	doc := toDocument(in)

	assert.Equal(t, []any{int64(1), int32(2)}, doc["violations"])
	assert.Equal(t, map[string]any{"a": []any{"x"}}, doc["nested"])
	assert.Equal(t, map[string]any{"k": "v"}, doc["ordered"])
	assert.Equal(t, int64(1714552200123), doc["at"])
}

func TestSnapshotFromRaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rec    bson.M
		want   remote.Snapshot
		wantOK bool
	}{
		{
			name:   "document data",
			rec:    bson.M{"_id": "c/1", "collection": "c", "docId": "1", "data": bson.M{"isUnlocked": true}},
			want:   remote.Snapshot{ID: "1", Data: remote.Document{"isUnlocked": true}},
			wantOK: true,
		},
		{
			name:   "array data keeps id only",
			rec:    bson.M{"_id": "c/2", "collection": "c", "docId": "2", "data": bson.A{int32(1), int32(2)}},
			want:   remote.Snapshot{ID: "2"},
			wantOK: true,
		},
		{
			name: "unreadable id is dropped",
			rec:  bson.M{"_id": "c/3", "collection": "c", "docId": int32(3), "data": bson.M{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw, err := bson.Marshal(tt.rec)
			require.NoError(t, err)

			snap, ok := snapshotFromRaw("c", raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, snap)
			}
		})
	}
}

func TestConnectRequiresURI(t *testing.T) {
	t.Parallel()

	_, err := Connect(context.Background(), "", "db")
	assert.Error(t, err)
}

func TestStoreAgainstMongo(t *testing.T) {
	t.Parallel()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	tc.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { tc.CleanupContainer(t, container) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	s, err := Connect(ctx, uri, "hydrosync_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ref := remote.FamilyRef("u1", remote.SettingsCollection, remote.SingletonID)
	require.NoError(t, s.Set(ctx, ref, remote.Document{"dailyGoalMl": int64(2000), "unit": "ml"}))
	require.NoError(t, s.Set(ctx, ref, remote.Document{"unit": "oz"}, remote.Merge()))

	doc, ok, err := s.Get(ctx, ref)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2000), doc["dailyGoalMl"])
	assert.Equal(t, "oz", doc["unit"])

	root := remote.UserRef("u1")
	require.NoError(t, s.Set(ctx, root, remote.Document{remote.LastSyncAtField: int64(42)}, remote.Merge()))
	rootDoc, ok, err := s.Get(ctx, root)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), rootDoc[remote.LastSyncAtField])

	coll := remote.FamilyCollection("u1", remote.AchievementsCollection)
	for _, id := range []string{"b", "a"} {
		require.NoError(t, s.Set(ctx, remote.Ref{Collection: coll, ID: id}, remote.Document{"isUnlocked": true}))
	}
	_, err = s.(*store).collection.InsertOne(ctx, bson.M{
		"_id": coll + "/c", "collection": coll, "docId": "c", "data": bson.A{int32(1), int32(2)},
	})
	require.NoError(t, err)

	snaps, err := s.List(ctx, coll)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, "a", snaps[0].ID)
	assert.Equal(t, true, snaps[0].Data["isUnlocked"])
	assert.Equal(t, remote.Snapshot{ID: "c"}, snaps[2], "a malformed record keeps its id")
}
