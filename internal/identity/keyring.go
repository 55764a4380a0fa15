package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the keyring service name used when none is configured.
const DefaultKeyringService = "hydrosync"

// DefaultKeyringAccount is the keyring entry holding the signed-in user id.
const DefaultKeyringAccount = "current-user"

// KeyringProvider reads the signed-in user id from the operating system keyring.
type KeyringProvider struct {
	service string
	account string
}

// Keyring returns a provider backed by the OS keyring.
func Keyring(service, account string) *KeyringProvider {
	if service == "" {
		service = DefaultKeyringService
	}
	if account == "" {
		account = DefaultKeyringAccount
	}
	return &KeyringProvider{service: service, account: account}
}

// CurrentUserID returns the stored user id. A missing entry or an unusable
// keyring is reported as anonymous.
func (p *KeyringProvider) CurrentUserID(_ context.Context) (string, bool) {
	uid, err := keyring.Get(p.service, p.account)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			slog.Warn("Failed to read user from keyring", "service", p.service, "error", err)
		}
		return "", false
	}
	uid = strings.TrimSpace(uid)
	return uid, uid != ""
}

// SignIn stores userID as the signed-in user.
func (p *KeyringProvider) SignIn(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errors.New("user id is required")
	}
	if err := keyring.Set(p.service, p.account, userID); err != nil {
		return fmt.Errorf("failed to store user in keyring: %w", err)
	}
	return nil
}

// SignOut removes the signed-in user. Signing out twice is not an error.
func (p *KeyringProvider) SignOut() error {
	if err := keyring.Delete(p.service, p.account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to remove user from keyring: %w", err)
	}
	return nil
}
