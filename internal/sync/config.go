package sync

import "time"

// Config holds the coordinator's timing and concurrency parameters.
type Config struct {
	// RenewInterval is how often the push subscription is torn down and
	// re-established. Vendor streams degrade over time.
	RenewInterval time.Duration

	// SetupTimeout is the global budget for one discovery pass.
	SetupTimeout time.Duration

	// FetchTimeout bounds each per-appliance info, state or capability
	// fetch during discovery.
	FetchTimeout time.Duration

	// UpdateTimeout bounds a single appliance state refetch (polling,
	// deferred compensation, stream renewal).
	UpdateTimeout time.Duration

	// DisconnectTimeout bounds a stream teardown during renewal.
	DisconnectTimeout time.Duration

	// DeferredDelay is how long after an end-of-cycle trigger the
	// compensating refetch runs.
	DeferredDelay time.Duration

	// DeferredTaskLimit caps concurrently pending compensation tasks
	// across all appliances.
	DeferredTaskLimit int

	// ReconcileInterval is how often the tracked appliance set is
	// reconciled against the account's current listing.
	ReconcileInterval time.Duration

	// RenewalBackoff is the extended pause after too many consecutive
	// renewal failures.
	RenewalBackoff time.Duration

	// MaxRenewalFailures is the consecutive failure count that triggers
	// the extended backoff.
	MaxRenewalFailures int

	// ShutdownTimeout bounds the wait for background tasks on Close.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		RenewInterval:      6 * time.Hour,
		SetupTimeout:       30 * time.Second,
		FetchTimeout:       8 * time.Second,
		UpdateTimeout:      10 * time.Second,
		DisconnectTimeout:  5 * time.Second,
		DeferredDelay:      70 * time.Second,
		DeferredTaskLimit:  5,
		ReconcileInterval:  24 * time.Hour,
		RenewalBackoff:     5 * time.Minute,
		MaxRenewalFailures: 5,
		ShutdownTimeout:    2 * time.Second,
	}
}
