// Package cloud provides the vendor cloud API client and the websocket
// event stream.
//
// APIClient is the REST surface: discovery, per-appliance state, capability
// and info fetches, and command execution. StreamClient pushes state change
// events; Subscribe replaces any previous subscription so a renewal never
// leaves two readers on the wire. ParseEvent normalises the two payload
// shapes the vendor emits (single-property increments and bulk documents).
package cloud
