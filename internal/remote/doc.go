// Package remote defines the per-user document store the engine synchronizes
// against, and the addressing scheme used inside it.
//
// Documents live in collections addressed by slash separated paths:
//
//	users/{userId}                        root document holding lastSyncAt
//	users/{userId}/waterEntries/{id}
//	users/{userId}/settings/current
//	users/{userId}/profile/current
//	users/{userId}/challenges/{id}
//	users/{userId}/achievements/{id}
//
// Backends live in subpackages (memory, postgres, mongo) and are selected by
// the storage factory in internal/app.
package remote
