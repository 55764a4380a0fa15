// Package codec converts between the hydration models and remote documents.
//
// Field names are camelCase. Timestamps are stored as Unix milliseconds and
// optional timestamps are omitted when unset. Decoding accepts every numeric
// shape a backend may hand back (int, int32, int64, float64, json.Number) so
// the same document decodes identically from memory, PostgreSQL and MongoDB.
package codec
