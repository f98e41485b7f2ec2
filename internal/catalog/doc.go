// Package catalog holds the static capability metadata that maps vendor
// attribute paths to entity definitions.
//
// The catalog is layered: a base layer shared by all appliances, a layer per
// appliance type (oven, refrigerator, washer), and per-model overrides.
// Resolve merges the layers into one effective catalog for a single
// appliance; later layers replace earlier descriptors wholesale.
//
// Catalog data is pure: no I/O, no mutation after package init.
package catalog
