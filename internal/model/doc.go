// Package model defines the hydration entities that are synchronized between
// the local embedded store and the remote per-user document store.
package model
