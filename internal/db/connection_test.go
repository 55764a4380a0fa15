package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquatrack/hydrosync/internal/config"
)

func TestBuildPoolConfig(t *testing.T) {
	t.Setenv(config.EnvDatabasePassword, "s3cr3t")

	tests := []struct {
		name         string
		cfg          *config.DatabaseConfig
		wantErr      string
		wantMax      int32
		wantMin      int32
		wantLifetime time.Duration
	}{
		{
			name:    "nil config",
			wantErr: "database configuration is required",
		},
		{
			name:    "missing host",
			cfg:     &config.DatabaseConfig{Port: 5432, User: "u", Database: "d"},
			wantErr: "database host is required",
		},
		{
			name:    "missing port",
			cfg:     &config.DatabaseConfig{Host: "localhost", User: "u", Database: "d"},
			wantErr: "database port is required",
		},
		{
			name:    "missing user",
			cfg:     &config.DatabaseConfig{Host: "localhost", Port: 5432, Database: "d"},
			wantErr: "database user is required",
		},
		{
			name:    "missing database",
			cfg:     &config.DatabaseConfig{Host: "localhost", Port: 5432, User: "u"},
			wantErr: "database name is required",
		},
		{
			name: "invalid lifetime",
			cfg: &config.DatabaseConfig{
				Host: "localhost", Port: 5432, User: "u", Database: "d", ConnMaxLifetime: "forever",
			},
			wantErr: "invalid connection max lifetime",
		},
		{
			name:         "defaults",
			cfg:          &config.DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Database: "d"},
			wantMax:      defaultMaxConns,
			wantMin:      defaultMinConns,
			wantLifetime: defaultConnMaxLifetime,
		},
		{
			name: "explicit pool settings",
			cfg: &config.DatabaseConfig{
				Host: "localhost", Port: 5432, User: "u", Database: "d",
				MaxOpenConns: 10, MaxIdleConns: 20, ConnMaxLifetime: "1h",
			},
			wantMax:      10,
			wantMin:      10,
			wantLifetime: time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poolConfig, err := BuildPoolConfig(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMax, poolConfig.MaxConns)
			assert.Equal(t, tt.wantMin, poolConfig.MinConns)
			assert.Equal(t, tt.wantLifetime, poolConfig.MaxConnLifetime)
			assert.Equal(t, "s3cr3t", poolConfig.ConnConfig.Password)
			assert.Equal(t, "localhost", poolConfig.ConnConfig.Host)
		})
	}
}

func TestBuildPoolConfigWithoutPassword(t *testing.T) {
	t.Setenv(config.EnvDatabasePassword, "")

	_, err := BuildPoolConfig(&config.DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Database: "d"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database password configured")
}

func TestNewPoolGivesUpWhenUnreachable(t *testing.T) {
	t.Setenv(config.EnvDatabasePassword, "s3cr3t")

	cfg := &config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "u",
		Database: "d",
		SSLMode:  "disable",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewPool(ctx, cfg, WithConnectTimeout(200*time.Millisecond))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping database")
}
