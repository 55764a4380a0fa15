package sync

import (
	"context"
	"log/slog"

	"github.com/aquatrack/hydrosync/internal/identity"
	"github.com/aquatrack/hydrosync/internal/remote"
)

// unionSyncer implements the union merge shared by water entries and
// challenges: records are keyed by id, missing records are copied to the
// side that lacks them, and records present on both sides are left alone.
type unionSyncer[T any] struct {
	family   string
	identity identity.Provider
	docs     remote.DocumentStore

	id          func(T) string
	encode      func(T) remote.Document
	decode      func(id string, doc remote.Document) (T, error)
	listLocal   func(ctx context.Context) ([]T, error)
	insertLocal func(ctx context.Context, v T) (bool, error)
}

func (u *unionSyncer[T]) Family() string {
	return u.family
}

func (u *unionSyncer[T]) Sync(ctx context.Context) (*Result, error) {
	uid, err := currentUser(ctx, u.identity, u.family)
	if err != nil {
		return nil, err
	}

	snaps, err := listRemote(ctx, u.docs, uid, u.family)
	if err != nil {
		return nil, err
	}
	localItems, err := u.listLocal(ctx)
	if err != nil {
		return nil, localError(u.family, "read", err)
	}

	result := &Result{Family: u.family}

	// Ids are taken from the listing itself so a malformed remote document
	// still counts as present and is never overwritten by the upload pass.
	remoteIDs := make(map[string]struct{}, len(snaps))
	for _, snap := range snaps {
		remoteIDs[snap.ID] = struct{}{}
	}
	localIDs := make(map[string]struct{}, len(localItems))
	for _, item := range localItems {
		localIDs[u.id(item)] = struct{}{}
	}

	for _, item := range localItems {
		id := u.id(item)
		if _, ok := remoteIDs[id]; ok {
			continue
		}
		if err := u.docs.Set(ctx, remote.FamilyRef(uid, u.family, id), u.encode(item)); err != nil {
			return result, remoteError(u.family, "write", err)
		}
		result.Uploaded++
	}

	for _, snap := range snaps {
		if _, ok := localIDs[snap.ID]; ok {
			continue
		}
		item, err := decodeListed(snap, u.decode)
		if err != nil {
			skipUndecodable(u.family, snap.ID, err)
			result.Skipped++
			continue
		}
		if _, err := u.insertLocal(ctx, item); err != nil {
			return result, localError(u.family, "write", err)
		}
		result.Downloaded++
	}

	slog.Debug("Family synced",
		"family", u.family,
		"uploaded", result.Uploaded,
		"downloaded", result.Downloaded,
		"skipped", result.Skipped)
	return result, nil
}

func (u *unionSyncer[T]) Upload(ctx context.Context) (*Result, error) {
	uid, err := currentUser(ctx, u.identity, u.family)
	if err != nil {
		return nil, err
	}
	items, err := u.listLocal(ctx)
	if err != nil {
		return nil, localError(u.family, "read", err)
	}

	result := &Result{Family: u.family}
	for _, item := range items {
		if err := u.docs.Set(ctx, remote.FamilyRef(uid, u.family, u.id(item)), u.encode(item)); err != nil {
			return result, remoteError(u.family, "write", err)
		}
		result.Uploaded++
	}
	return result, nil
}

func (u *unionSyncer[T]) Download(ctx context.Context) (*Result, error) {
	uid, err := currentUser(ctx, u.identity, u.family)
	if err != nil {
		return nil, err
	}
	snaps, err := listRemote(ctx, u.docs, uid, u.family)
	if err != nil {
		return nil, err
	}

	result := &Result{Family: u.family}
	for _, snap := range snaps {
		item, err := decodeListed(snap, u.decode)
		if err != nil {
			skipUndecodable(u.family, snap.ID, err)
			result.Skipped++
			continue
		}
		inserted, err := u.insertLocal(ctx, item)
		if err != nil {
			return result, localError(u.family, "write", err)
		}
		if inserted {
			result.Downloaded++
		}
	}
	return result, nil
}
