package influxdb

import "errors"

// Sentinel errors for telemetry operations. Callers match with errors.Is.
var (
	// ErrNotConnected indicates the client has no live connection.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrConnectionFailed indicates the initial connection attempt failed.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrDisabled indicates the integration is turned off in config.yaml.
	ErrDisabled = errors.New("influxdb: disabled in configuration")
)
