// Package mongo provides a MongoDB-backed implementation of the remote
// DocumentStore. Every document is stored in a single collection keyed by its
// full path, with the user-visible fields kept under "data".
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/aquatrack/hydrosync/internal/remote"
)

const (
	// DefaultCollection is the MongoDB collection holding every document.
	DefaultCollection = "documents"

	connectTimeout = 10 * time.Second
)

// record is the stored shape of a document.
type record struct {
	Path       string `bson:"_id"`
	Collection string `bson:"collection"`
	DocID      string `bson:"docId"`
	Data       bson.M `bson:"data"`
}

type store struct {
	client     *mongo.Client
	collection *mongo.Collection
	ownsClient bool
}

var _ remote.DocumentStore = (*store)(nil)

// Connect dials the MongoDB deployment at uri and returns a store using the
// given database. The returned store owns the client and disconnects it on Close.
func Connect(ctx context.Context, uri, database string) (remote.DocumentStore, error) {
	if uri == "" || database == "" {
		return nil, errors.New("mongo uri and database are required")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	s := &store{
		client:     client,
		collection: client.Database(database).Collection(DefaultCollection),
		ownsClient: true,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	slog.Info("Connected to mongo document store", "database", database)
	return s, nil
}

// New wraps an existing collection. The caller keeps ownership of the client.
func New(collection *mongo.Collection) remote.DocumentStore {
	return &store{client: collection.Database().Client(), collection: collection}
}

func (s *store) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "collection", Value: 1}, {Key: "docId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create document index: %w", err)
	}
	return nil
}

func (s *store) Get(ctx context.Context, ref remote.Ref) (remote.Document, bool, error) {
	if err := ref.Validate(); err != nil {
		return nil, false, err
	}

	var rec record
	err := s.collection.FindOne(ctx, bson.M{"_id": ref.Path()}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get document %s: %w", ref, err)
	}
	return toDocument(rec.Data), true, nil
}

func (s *store) Set(ctx context.Context, ref remote.Ref, doc remote.Document, opts ...remote.SetOption) error {
	if err := ref.Validate(); err != nil {
		return err
	}
	o := remote.ApplySetOptions(opts...)
	filter := bson.M{"_id": ref.Path()}

	if !o.Merge {
		data := bson.M{}
		for k, v := range doc {
			data[k] = v
		}
		rec := record{Path: ref.Path(), Collection: ref.Collection, DocID: ref.ID, Data: data}
		if _, err := s.collection.ReplaceOne(ctx, filter, rec, options.Replace().SetUpsert(true)); err != nil {
			return fmt.Errorf("failed to write document %s: %w", ref, err)
		}
		return nil
	}

	set := bson.M{"collection": ref.Collection, "docId": ref.ID}
	for k, v := range doc {
		set["data."+k] = v
	}
	if len(doc) == 0 {
		// An empty merge still has to create the document.
		update := bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"data": bson.M{}},
		}
		if _, err := s.collection.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true)); err != nil {
			return fmt.Errorf("failed to merge document %s: %w", ref, err)
		}
		return nil
	}
	if _, err := s.collection.UpdateOne(ctx, filter, bson.M{"$set": set}, options.UpdateOne().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to merge document %s: %w", ref, err)
	}
	return nil
}

func (s *store) List(ctx context.Context, collection string) ([]remote.Snapshot, error) {
	cursor, err := s.collection.Find(ctx,
		bson.M{"collection": collection},
		options.Find().SetSort(bson.D{{Key: "docId", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}

	defer func() { _ = cursor.Close(ctx) }()

	var out []remote.Snapshot
	for cursor.Next(ctx) {
		if snap, ok := snapshotFromRaw(collection, cursor.Current); ok {
			out = append(out, snap)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}
	remote.SortSnapshots(out)
	return out, nil
}

// snapshotFromRaw decodes one listed record. A record whose data is not a
// document is returned without data so callers still see its id; a record
// without a readable id is dropped.
func snapshotFromRaw(collection string, raw bson.Raw) (remote.Snapshot, bool) {
	var rec record
	if err := bson.Unmarshal(raw, &rec); err != nil {
		id, ok := raw.Lookup("docId").StringValueOK()
		slog.Warn("Listing malformed remote document",
			"collection", collection,
			"id", id,
			"error", err)
		return remote.Snapshot{ID: id}, ok && id != ""
	}
	return remote.Snapshot{ID: rec.DocID, Data: toDocument(rec.Data)}, true
}

func (s *store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *store) Close() error {
	if !s.ownsClient {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
