// Package identity resolves the signed-in user whose remote data is synchronized.
package identity

import (
	"context"
	"strings"
)

//go:generate mockgen -destination=mocks/mock_identity.go -package=mocks -source=identity.go Provider

// Provider returns the current user id. The boolean is false when nobody is
// signed in, which callers treat as a soft failure rather than an error.
type Provider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

type staticProvider struct {
	userID string
}

// Static returns a provider that always reports userID. An empty userID
// means anonymous.
func Static(userID string) Provider {
	return &staticProvider{userID: strings.TrimSpace(userID)}
}

func (p *staticProvider) CurrentUserID(_ context.Context) (string, bool) {
	return p.userID, p.userID != ""
}

// Anonymous returns a provider with no signed-in user.
func Anonymous() Provider {
	return &staticProvider{}
}
