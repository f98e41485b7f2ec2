package sync

import "errors"

// Domain errors for the sync package.
var (
	// ErrAuthenticationFailed is returned when the vendor rejects the
	// session credentials. Fatal to the session; the host must re-prompt
	// for credentials rather than retry.
	ErrAuthenticationFailed = errors.New("sync: authentication failed")

	// ErrNotReady is returned for transient failures during the
	// authentication probe; the caller may retry later.
	ErrNotReady = errors.New("sync: vendor not ready")

	// ErrAllUpdatesFailed is returned when every appliance failed in one
	// polling pass.
	ErrAllUpdatesFailed = errors.New("sync: all appliance updates failed")
)
