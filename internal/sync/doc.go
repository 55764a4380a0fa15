// Package sync reconciles the local embedded store with the remote per-user
// document store.
//
// # Families
//
// Five entity families are synchronized independently, each with its own
// merge policy:
//
//   - water entries: union merge keyed by id; content is immutable, so an id
//     present on both sides is left untouched
//   - settings and profile: singletons; the remote copy is downloaded only
//     when the device has none, otherwise the local copy is merge-written
//     to the remote
//   - challenges: union merge keyed by id, like water entries
//   - achievements: unlocks are monotonic; every remote unlock is applied
//     locally, then every local unlock is merge-written to the remote
//
// No family ever deletes a record on either side.
//
// # Core Interfaces
//
//   - Syncer: one family; Sync merges in both directions, Upload and
//     Download copy in one direction only
//   - Manager: runs every Syncer in the fixed order water entries, settings,
//     profile, challenges, achievements, stopping at the first failure
//
// The sync/coordinator subpackage owns everything around a run: identity
// checks, the observable status, the last-sync watermark, single-flighting
// of concurrent requests and the optional background schedule.
//
// # Errors
//
// Failures are reported as *Error with a Kind of NotAuthenticated,
// RemoteUnavailable or LocalStoreError. Remote documents that cannot be
// decoded are logged and skipped; they never fail a run.
package sync
