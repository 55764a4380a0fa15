package mongo

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/aquatrack/hydrosync/internal/remote"
)

// toDocument converts decoded BSON into plain Go values so the codec sees
// the same shapes regardless of backend.
func toDocument(m bson.M) remote.Document {
	doc := make(remote.Document, len(m))
	for k, v := range m {
		doc[k] = normalize(v)
	}
	return doc
}

func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		return map[string]any(toDocument(t))
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case bson.DateTime:
		return int64(t)
	default:
		return v
	}
}
