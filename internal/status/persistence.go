// Package status provides sync status tracking, broadcasting and persistence.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

//go:generate mockgen -destination=mocks/mock_status_persistence.go -package=mocks -source=persistence.go StatusPersistence

const (
	// StatusFileName is the name of the status file
	StatusFileName = "status.json"
)

// StatusPersistence defines the interface for sync status persistence
//
//nolint:revive // This name is fine
type StatusPersistence interface {
	// SaveStatus saves the sync status of a user to persistent storage
	SaveStatus(ctx context.Context, userID string, status *SyncStatus) error

	// LoadStatus loads the sync status of a user from persistent storage.
	// Returns an Idle status if nothing was saved yet (first run)
	LoadStatus(ctx context.Context, userID string) (*SyncStatus, error)
}

// fileStatusPersistence implements StatusPersistence using local filesystem
type fileStatusPersistence struct {
	basePath string
}

// NewFileStatusPersistence creates a new file-based status persistence.
// basePath is the directory where per-user status files are stored
func NewFileStatusPersistence(basePath string) StatusPersistence {
	return &fileStatusPersistence{
		basePath: basePath,
	}
}

func (f *fileStatusPersistence) statusPath(userID string) (string, error) {
	if userID == "" || userID != filepath.Base(userID) || userID == "." || userID == ".." {
		return "", fmt.Errorf("invalid user id %q for status file", userID)
	}
	return filepath.Join(f.basePath, userID, StatusFileName), nil
}

// SaveStatus writes the status to a JSON file in the user's directory
func (f *fileStatusPersistence) SaveStatus(_ context.Context, userID string, status *SyncStatus) error {
	filePath, err := f.statusPath(userID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("failed to create status directory for user '%s': %w", userID, err)
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status data for user '%s': %w", userID, err)
	}

	// Write to temporary file first for atomic operation
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary status file for user '%s': %w", userID, err)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename status file for user '%s': %w", userID, err)
	}

	return nil
}

// LoadStatus reads the status of a user. Returns Idle if the file doesn't exist
func (f *fileStatusPersistence) LoadStatus(_ context.Context, userID string) (*SyncStatus, error) {
	filePath, err := f.statusPath(userID)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- filePath is built from basePath and a validated single path element
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s := Idle()
			return &s, nil
		}
		return nil, fmt.Errorf("failed to read status file for user '%s': %w", userID, err)
	}

	var status SyncStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status data for user '%s': %w", userID, err)
	}
	if status.Phase == "" {
		status.Phase = SyncPhaseIdle
	}

	return &status, nil
}
