package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aquatrack/hydrosync/internal/config"
	"github.com/aquatrack/hydrosync/internal/identity"
)

var loginCmd = &cobra.Command{
	Use:   "login <user-id>",
	Short: "Store the signed-in user id in the OS keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := keyringProvider()
		if err != nil {
			return err
		}
		if err := provider.SignIn(args[0]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", args[0])
		return err
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the signed-in user id from the OS keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		provider, err := keyringProvider()
		if err != nil {
			return err
		}
		if err := provider.SignOut(); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return err
	},
}

// keyringProvider returns the configured keyring identity, or an error when
// another identity type is configured
func keyringProvider() (*identity.KeyringProvider, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.GetIdentityType() != config.IdentityTypeKeyring {
		return nil, fmt.Errorf("login and logout require the keyring identity, configured: %s", cfg.GetIdentityType())
	}

	var service, account string
	if cfg.Identity != nil && cfg.Identity.Keyring != nil {
		service = cfg.Identity.Keyring.Service
		account = cfg.Identity.Keyring.Account
	}
	return identity.Keyring(service, account), nil
}
