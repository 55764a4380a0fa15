package coordinator

import (
	"log/slog"
	"time"

	"github.com/aquatrack/hydrosync/internal/config"
)

// IntervalFromPolicy returns the periodic sync interval configured in the
// sync policy. Zero means the periodic loop is disabled.
func IntervalFromPolicy(policy *config.SyncPolicyConfig) time.Duration {
	if policy == nil || policy.Interval == "" {
		return 0
	}

	interval, err := time.ParseDuration(policy.Interval)
	if err != nil || interval < 0 {
		slog.Warn("Invalid sync interval, periodic sync disabled",
			"interval", policy.Interval)
		return 0
	}
	return interval
}
