// Package config provides configuration loading and management for hydrosync.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/aquatrack/hydrosync/internal/telemetry"
)

// AppName names the data and config directories
const AppName = "hydrosync"

// EnvPrefix is the prefix of environment variables read through viper
const EnvPrefix = "HYDROSYNC"

const (
	// IdentityTypeStatic uses a fixed user id from the config file
	IdentityTypeStatic = "static"

	// IdentityTypeKeyring reads the signed-in user id from the OS keyring
	IdentityTypeKeyring = "keyring"

	// IdentityTypeToken verifies an HS256 token and uses its subject
	IdentityTypeToken = "token"
)

const (
	// RemoteTypeMemory keeps remote documents in process memory
	RemoteTypeMemory = "memory"

	// RemoteTypePostgres stores remote documents in PostgreSQL
	RemoteTypePostgres = "postgres"

	// RemoteTypeMongo stores remote documents in MongoDB
	RemoteTypeMongo = "mongo"
)

// Environment variables holding secrets
const (
	EnvDatabasePassword = "HYDROSYNC_DATABASE_PASSWORD"
	EnvMongoURI         = "HYDROSYNC_MONGO_URI"
	EnvTokenSecret      = "HYDROSYNC_TOKEN_SECRET"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// EvalSymlinks also cleans the path
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) && !filepath.IsLocal(realPath) {
			return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Identity   *IdentityConfig   `yaml:"identity,omitempty"`
	Local      *LocalConfig      `yaml:"local,omitempty"`
	Remote     *RemoteConfig     `yaml:"remote,omitempty"`
	SyncPolicy *SyncPolicyConfig `yaml:"syncPolicy,omitempty"`

	// StatusDir holds one status file per user. Defaults to the XDG state
	// directory.
	StatusDir string `yaml:"statusDir,omitempty"`

	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// IdentityConfig selects where the signed-in user id comes from
type IdentityConfig struct {
	// Type is static, keyring (default) or token
	Type string `yaml:"type,omitempty"`

	// UserID is the fixed user id of the static type
	UserID string `yaml:"userId,omitempty"`

	Keyring *KeyringConfig `yaml:"keyring,omitempty"`
	Token   *TokenConfig   `yaml:"token,omitempty"`
}

// KeyringConfig names the keyring entry holding the user id
type KeyringConfig struct {
	Service string `yaml:"service,omitempty"`
	Account string `yaml:"account,omitempty"`
}

// TokenConfig locates the identity token and its verification secret
type TokenConfig struct {
	// Path is the file holding the signed token
	Path string `yaml:"path"`

	// SecretFile holds the HMAC secret. HYDROSYNC_TOKEN_SECRET is used when
	// it is not set.
	SecretFile string `yaml:"secretFile,omitempty"`

	// Issuer, when set, must match the token's iss claim
	Issuer string `yaml:"issuer,omitempty"`
}

// LocalConfig defines the on-device store
type LocalConfig struct {
	// Path is the SQLite database file
	Path string `yaml:"path,omitempty"`
}

// RemoteConfig defines the remote document store
type RemoteConfig struct {
	// Type is memory (default), postgres or mongo
	Type string `yaml:"type,omitempty"`

	Database *DatabaseConfig `yaml:"database,omitempty"`
	Mongo    *MongoConfig    `yaml:"mongo,omitempty"`
}

// SyncPolicyConfig defines synchronization settings
type SyncPolicyConfig struct {
	// Interval enables periodic sync in serve mode, e.g. "15m"
	Interval string `yaml:"interval,omitempty"`
}

// MongoConfig defines the MongoDB connection
type MongoConfig struct {
	// URI is the connection string. HYDROSYNC_MONGO_URI is used when it is
	// not set.
	URI string `yaml:"uri,omitempty"`

	// Database is the database name, "hydrosync" by default
	Database string `yaml:"database,omitempty"`
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname or IP address
	Host string `yaml:"host"`

	// Port is the database server port
	Port int `yaml:"port"`

	// User is the database username
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password.
	// The file should contain only the password with optional trailing whitespace
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxOpenConns is the maximum number of open connections to the database
	MaxOpenConns int32 `yaml:"maxOpenConns,omitempty"`

	// MaxIdleConns is the maximum number of idle connections in the pool
	MaxIdleConns int32 `yaml:"maxIdleConns,omitempty"`

	// ConnMaxLifetime is the maximum lifetime of a connection (e.g., "1h", "30m")
	ConnMaxLifetime string `yaml:"connMaxLifetime,omitempty"`
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from HYDROSYNC_DATABASE_PASSWORD environment variable
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		return readSecretFile(d.PasswordFile)
	}

	if envPassword := os.Getenv(EnvDatabasePassword); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf(
		"no database password configured: set passwordFile or %s environment variable", EnvDatabasePassword,
	)
}

// GetConnectionString builds a PostgreSQL connection string with proper password handling.
// The password is URL-escaped to handle special characters safely.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		url.QueryEscape(password),
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	), nil
}

// GetURI returns the configured URI or the HYDROSYNC_MONGO_URI variable
func (m *MongoConfig) GetURI() (string, error) {
	if m.URI != "" {
		return m.URI, nil
	}
	if env := os.Getenv(EnvMongoURI); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("no mongo uri configured: set remote.mongo.uri or %s environment variable", EnvMongoURI)
}

// GetDatabase returns the database name, "hydrosync" by default
func (m *MongoConfig) GetDatabase() string {
	if m.Database == "" {
		return AppName
	}
	return m.Database
}

// GetSecret returns the token verification secret
func (t *TokenConfig) GetSecret() ([]byte, error) {
	if t.SecretFile != "" {
		secret, err := readSecretFile(t.SecretFile)
		return []byte(secret), err
	}
	if env := os.Getenv(EnvTokenSecret); env != "" {
		return []byte(env), nil
	}
	return nil, fmt.Errorf("no token secret configured: set identity.token.secretFile or %s environment variable", EnvTokenSecret)
}

func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read secret from file %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// LoadConfig loads and parses configuration from a YAML file. Without
// WithConfigPath the defaults are returned.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	var config Config
	if loaderCfg.path != "" {
		data, err := os.ReadFile(loaderCfg.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfigPath returns the config file looked up when no path is given
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// GetIdentityType returns the identity type, keyring by default
func (c *Config) GetIdentityType() string {
	if c.Identity == nil || c.Identity.Type == "" {
		return IdentityTypeKeyring
	}
	return c.Identity.Type
}

// GetRemoteType returns the remote type, memory by default
func (c *Config) GetRemoteType() string {
	if c.Remote == nil || c.Remote.Type == "" {
		return RemoteTypeMemory
	}
	return c.Remote.Type
}

// GetLocalPath returns the SQLite file path, under the XDG data directory
// by default
func (c *Config) GetLocalPath() string {
	if c.Local != nil && c.Local.Path != "" {
		return c.Local.Path
	}
	return filepath.Join(xdg.DataHome, AppName, AppName+".db")
}

// GetStatusDir returns the status directory, under the XDG state directory
// by default
func (c *Config) GetStatusDir() string {
	if c.StatusDir != "" {
		return c.StatusDir
	}
	return filepath.Join(xdg.StateHome, AppName, "status")
}

// Validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := c.validateIdentity(); err != nil {
		return err
	}

	if err := c.validateRemote(); err != nil {
		return err
	}

	if err := validateSyncPolicy(c.SyncPolicy); err != nil {
		return err
	}

	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	return nil
}

func (c *Config) validateIdentity() error {
	switch c.GetIdentityType() {
	case IdentityTypeStatic:
		if c.Identity.UserID == "" {
			return fmt.Errorf("identity.userId is required for the static identity")
		}
	case IdentityTypeKeyring:
	case IdentityTypeToken:
		if c.Identity.Token == nil || c.Identity.Token.Path == "" {
			return fmt.Errorf("identity.token.path is required for the token identity")
		}
	default:
		return fmt.Errorf("identity.type must be one of static, keyring, token; got %q", c.Identity.Type)
	}
	return nil
}

func (c *Config) validateRemote() error {
	switch c.GetRemoteType() {
	case RemoteTypeMemory:
	case RemoteTypePostgres:
		if c.Remote.Database == nil {
			return fmt.Errorf("remote.database is required for the postgres remote")
		}
		if c.Remote.Database.Host == "" || c.Remote.Database.Database == "" {
			return fmt.Errorf("remote.database.host and remote.database.database are required")
		}
		if lifetime := c.Remote.Database.ConnMaxLifetime; lifetime != "" {
			if _, err := time.ParseDuration(lifetime); err != nil {
				return fmt.Errorf("remote.database.connMaxLifetime must be a valid duration: %w", err)
			}
		}
	case RemoteTypeMongo:
		if c.Remote.Mongo == nil {
			return fmt.Errorf("remote.mongo is required for the mongo remote")
		}
	default:
		return fmt.Errorf("remote.type must be one of memory, postgres, mongo; got %q", c.Remote.Type)
	}
	return nil
}

// validateSyncPolicy validates the sync policy configuration
func validateSyncPolicy(policy *SyncPolicyConfig) error {
	if policy == nil || policy.Interval == "" {
		return nil
	}

	interval, err := time.ParseDuration(policy.Interval)
	if err != nil {
		return fmt.Errorf("syncPolicy.interval must be a valid duration (e.g., '30m', '1h'): %w", err)
	}
	if interval < time.Minute {
		return fmt.Errorf("syncPolicy.interval must be at least 1m, got %s", policy.Interval)
	}

	return nil
}
