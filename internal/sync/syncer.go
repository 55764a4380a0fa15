package sync

import (
	"context"
	"log/slog"

	"github.com/aquatrack/hydrosync/internal/identity"
	"github.com/aquatrack/hydrosync/internal/remote"
)

//go:generate mockgen -destination=mock_syncer_test.go -package=sync -self_package=github.com/aquatrack/hydrosync/internal/sync -source=syncer.go Syncer

// Result counts what one family run did.
type Result struct {
	Family     string `json:"family"`
	Uploaded   int    `json:"uploaded"`
	Downloaded int    `json:"downloaded"`
	Skipped    int    `json:"skipped"`
}

// Syncer synchronizes one entity family for the signed-in user.
type Syncer interface {
	// Family returns the remote collection name of the family.
	Family() string
	// Sync merges local and remote copies according to the family policy.
	Sync(ctx context.Context) (*Result, error)
	// Upload copies every local record to the remote without merging.
	Upload(ctx context.Context) (*Result, error)
	// Download copies remote records into the local store without merging.
	Download(ctx context.Context) (*Result, error)
}

// currentUser resolves the signed-in user or returns a NotAuthenticated error.
func currentUser(ctx context.Context, p identity.Provider, family string) (string, error) {
	uid, ok := p.CurrentUserID(ctx)
	if !ok {
		return "", notAuthenticatedError(family)
	}
	return uid, nil
}

// skipUndecodable logs a remote document that could not be decoded.
func skipUndecodable(family, id string, err error) {
	slog.Warn("Skipping undecodable remote document",
		"family", family,
		"id", id,
		"error", err)
}

// decodeListed decodes a listed snapshot. A snapshot without data never
// decodes, so the caller skips it like any other malformed document.
func decodeListed[T any](snap remote.Snapshot, decode func(id string, doc remote.Document) (T, error)) (T, error) {
	if snap.Data == nil {
		var zero T
		return zero, errNoData
	}
	return decode(snap.ID, snap.Data)
}

// listRemote fetches a family collection and wraps failures.
func listRemote(ctx context.Context, docs remote.DocumentStore, uid, family string) ([]remote.Snapshot, error) {
	snaps, err := docs.List(ctx, remote.FamilyCollection(uid, family))
	if err != nil {
		return nil, remoteError(family, "list", err)
	}
	return snaps, nil
}
