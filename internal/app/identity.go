package app

import (
	"fmt"

	"github.com/aquatrack/hydrosync/internal/config"
	"github.com/aquatrack/hydrosync/internal/identity"
)

// NewIdentityProvider creates the identity provider selected by the configuration
func NewIdentityProvider(cfg *config.Config) (identity.Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch cfg.GetIdentityType() {
	case config.IdentityTypeStatic:
		return identity.Static(cfg.Identity.UserID), nil
	case config.IdentityTypeKeyring:
		var service, account string
		if cfg.Identity != nil && cfg.Identity.Keyring != nil {
			service = cfg.Identity.Keyring.Service
			account = cfg.Identity.Keyring.Account
		}
		return identity.Keyring(service, account), nil
	case config.IdentityTypeToken:
		tc := cfg.Identity.Token
		if tc == nil {
			return nil, fmt.Errorf("identity.token is required for the token identity")
		}
		secret, err := tc.GetSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to get token secret: %w", err)
		}
		var opts []identity.TokenOption
		if tc.Issuer != "" {
			opts = append(opts, identity.WithIssuer(tc.Issuer))
		}
		return identity.TokenFromFile(tc.Path, secret, opts...)
	default:
		return nil, fmt.Errorf("unknown identity type: %s", cfg.GetIdentityType())
	}
}
