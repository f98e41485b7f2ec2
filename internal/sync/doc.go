// Package sync orchestrates the appliance lifecycle against the vendor
// cloud: authentication probe, concurrent discovery, the push event stream
// with periodic renewal, the polling fallback, deferred end-of-cycle
// compensation and registry reconciliation.
//
// The Coordinator owns the appliance registry. Discovery populates it,
// reconciliation prunes appliances the account no longer lists, and every
// state change is fanned out to the host notifier and the configured state
// sinks.
package sync
