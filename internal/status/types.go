package status

import (
	"errors"
	"fmt"
	"time"
)

// SyncPhase represents the current phase of a synchronization run
type SyncPhase string

const (
	// SyncPhaseIdle means no sync has run since the process started
	SyncPhaseIdle SyncPhase = "Idle"

	// SyncPhaseSyncing means a sync is currently in progress
	SyncPhaseSyncing SyncPhase = "Syncing"

	// SyncPhaseSuccess means the last sync completed successfully
	SyncPhaseSuccess SyncPhase = "Success"

	// SyncPhaseError means the last sync failed
	SyncPhaseError SyncPhase = "Error"
)

// ErrInvalidTransition is returned when a status change skips or repeats a phase.
var ErrInvalidTransition = errors.New("invalid sync status transition")

// SyncStatus represents the current state of synchronization
type SyncStatus struct {
	// Phase represents the current synchronization phase
	Phase SyncPhase `json:"phase" yaml:"phase"`

	// Message carries the error message when Phase is Error
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// LastAttempt is the timestamp of the last sync attempt
	LastAttempt *time.Time `json:"lastAttempt,omitempty" yaml:"lastAttempt,omitempty"`

	// AttemptCount is the number of sync attempts since last success
	AttemptCount int `json:"attemptCount,omitempty" yaml:"attemptCount,omitempty"`

	// LastSyncTime is the completion time of the last successful sync
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty" yaml:"lastSyncTime,omitempty"`
}

// Idle returns the initial status.
func Idle() SyncStatus {
	return SyncStatus{Phase: SyncPhaseIdle}
}

// Syncing returns the in-progress status that follows prev.
func Syncing(prev SyncStatus, now time.Time) SyncStatus {
	next := prev
	next.Phase = SyncPhaseSyncing
	next.Message = ""
	next.LastAttempt = &now
	next.AttemptCount = prev.AttemptCount + 1
	return next
}

// Success returns the status of a sync that completed at ts.
func Success(prev SyncStatus, ts time.Time) SyncStatus {
	next := prev
	next.Phase = SyncPhaseSuccess
	next.Message = ""
	next.AttemptCount = 0
	next.LastSyncTime = &ts
	return next
}

// Failed returns the status of a sync that failed with msg.
func Failed(prev SyncStatus, msg string) SyncStatus {
	next := prev
	next.Phase = SyncPhaseError
	next.Message = msg
	return next
}

// IsTerminal reports whether the phase ends a run.
func (p SyncPhase) IsTerminal() bool {
	return p == SyncPhaseSuccess || p == SyncPhaseError
}

// ValidateTransition checks that moving from one phase to another is allowed.
// A run always goes Idle|Success|Error -> Syncing -> Success|Error.
func ValidateTransition(from, to SyncPhase) error {
	switch to {
	case SyncPhaseSyncing:
		if from == SyncPhaseSyncing {
			return fmt.Errorf("%w: sync already in progress", ErrInvalidTransition)
		}
	case SyncPhaseSuccess, SyncPhaseError:
		if from != SyncPhaseSyncing {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
		}
	case SyncPhaseIdle:
		if from == SyncPhaseSyncing {
			return fmt.Errorf("%w: cannot go idle while syncing", ErrInvalidTransition)
		}
	default:
		return fmt.Errorf("%w: unknown phase %q", ErrInvalidTransition, to)
	}
	return nil
}
