package sync

import (
	"context"

	"github.com/aquatrack/hydrosync/internal/identity"
	"github.com/aquatrack/hydrosync/internal/remote"
)

// singletonSyncer implements the policy shared by settings and profile. The
// remote copy only wins while the device has never stored one; after that
// the local copy is pushed on every run.
type singletonSyncer[T any] struct {
	family   string
	identity identity.Provider
	docs     remote.DocumentStore

	encode    func(T) remote.Document
	decode    func(doc remote.Document) (T, error)
	getLocal  func(ctx context.Context) (*T, error)
	saveLocal func(ctx context.Context, v T) error
}

func (s *singletonSyncer[T]) Family() string {
	return s.family
}

func (s *singletonSyncer[T]) ref(uid string) remote.Ref {
	return remote.FamilyRef(uid, s.family, remote.SingletonID)
}

func (s *singletonSyncer[T]) Sync(ctx context.Context) (*Result, error) {
	uid, err := currentUser(ctx, s.identity, s.family)
	if err != nil {
		return nil, err
	}

	doc, exists, err := s.docs.Get(ctx, s.ref(uid))
	if err != nil {
		return nil, remoteError(s.family, "read", err)
	}
	current, err := s.getLocal(ctx)
	if err != nil {
		return nil, localError(s.family, "read", err)
	}

	result := &Result{Family: s.family}
	switch {
	case exists && current == nil:
		v, err := s.decode(doc)
		if err != nil {
			skipUndecodable(s.family, remote.SingletonID, err)
			result.Skipped++
			return result, nil
		}
		if err := s.saveLocal(ctx, v); err != nil {
			return result, localError(s.family, "write", err)
		}
		result.Downloaded++
	case current != nil:
		if err := s.docs.Set(ctx, s.ref(uid), s.encode(*current), remote.Merge()); err != nil {
			return result, remoteError(s.family, "write", err)
		}
		result.Uploaded++
	}
	return result, nil
}

func (s *singletonSyncer[T]) Upload(ctx context.Context) (*Result, error) {
	uid, err := currentUser(ctx, s.identity, s.family)
	if err != nil {
		return nil, err
	}
	current, err := s.getLocal(ctx)
	if err != nil {
		return nil, localError(s.family, "read", err)
	}

	result := &Result{Family: s.family}
	if current == nil {
		return result, nil
	}
	if err := s.docs.Set(ctx, s.ref(uid), s.encode(*current), remote.Merge()); err != nil {
		return result, remoteError(s.family, "write", err)
	}
	result.Uploaded++
	return result, nil
}

func (s *singletonSyncer[T]) Download(ctx context.Context) (*Result, error) {
	uid, err := currentUser(ctx, s.identity, s.family)
	if err != nil {
		return nil, err
	}
	doc, exists, err := s.docs.Get(ctx, s.ref(uid))
	if err != nil {
		return nil, remoteError(s.family, "read", err)
	}

	result := &Result{Family: s.family}
	if !exists {
		return result, nil
	}
	v, err := s.decode(doc)
	if err != nil {
		skipUndecodable(s.family, remote.SingletonID, err)
		result.Skipped++
		return result, nil
	}
	if err := s.saveLocal(ctx, v); err != nil {
		return result, localError(s.family, "write", err)
	}
	result.Downloaded++
	return result, nil
}
