package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenProvider derives the user id from the subject of an HS256-signed JWT.
// The token is re-read on every call so a refreshed token file is picked up
// without a restart.
type TokenProvider struct {
	load   func() (string, error)
	secret []byte
	issuer string
}

// TokenOption configures a TokenProvider.
type TokenOption func(*TokenProvider)

// WithIssuer requires the token to carry the given issuer.
func WithIssuer(issuer string) TokenOption {
	return func(p *TokenProvider) {
		p.issuer = issuer
	}
}

// TokenFromFile returns a provider reading the token from path.
func TokenFromFile(path string, secret []byte, opts ...TokenOption) (*TokenProvider, error) {
	if path == "" {
		return nil, errors.New("token file path is required")
	}
	return newTokenProvider(func() (string, error) {
		data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted configuration
		if err != nil {
			return "", err
		}
		return string(data), nil
	}, secret, opts...)
}

// TokenFromString returns a provider for a fixed token.
func TokenFromString(token string, secret []byte, opts ...TokenOption) (*TokenProvider, error) {
	return newTokenProvider(func() (string, error) { return token, nil }, secret, opts...)
}

func newTokenProvider(load func() (string, error), secret []byte, opts ...TokenOption) (*TokenProvider, error) {
	if len(secret) == 0 {
		return nil, errors.New("token signing secret is required")
	}
	p := &TokenProvider{load: load, secret: secret}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// CurrentUserID returns the verified subject. Missing, malformed or expired
// tokens are reported as anonymous.
func (p *TokenProvider) CurrentUserID(_ context.Context) (string, bool) {
	raw, err := p.load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Failed to load identity token", "error", err)
		}
		return "", false
	}

	subject, err := p.verify(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("Rejected identity token", "error", err)
		return "", false
	}
	return subject, true
}

func (p *TokenProvider) verify(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("token is empty")
	}

	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if p.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(p.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (any, error) {
		return p.secret, nil
	}, parserOpts...)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("invalid subject: %w", err)
	}
	if subject == "" {
		return "", errors.New("token has no subject")
	}
	return subject, nil
}
