// Package appliance provides the appliance model and registry.
//
// An Appliance wraps one vendor appliance: its identity, its live state
// document, the capability metadata the vendor reported for it, and the
// effective catalog resolved for its type and model. State mutation goes
// through three operations with distinct merge semantics:
//
//   - ApplyPartialUpdate writes a single attribute path, creating nested
//     aggregates on demand.
//   - ApplyFullUpdate deep-merges a bulk reported document, preserving
//     constant-access values unless the payload targets them explicitly.
//   - ReplaceState swaps the whole state document after a poll refetch.
//
// The Registry is the thread-safe collection of appliances keyed by ID.
// State history is persisted to SQLite for a local audit trail.
package appliance
