// Package entity maps appliance capabilities to host-facing entities.
//
// Build flattens an appliance's live capability document, grafts in static
// attributes and catalog-only definitions, and produces one entity per
// attribute path (or one per command value for button-like attributes).
// Catalog metadata wins over live capability info key-wise.
//
// Numeric entities resolve their min/max/step at read time against the
// currently selected program's constraint table, falling back to the global
// capability bounds and then to hard safety limits. Availability is a pure
// function of the current reported state: program tables and declarative
// trigger rules are re-evaluated on every check, never cached.
package entity
