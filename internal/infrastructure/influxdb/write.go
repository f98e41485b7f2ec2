package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteState records one numeric reported attribute of an appliance.
//
// The point lands in the appliance_state measurement, tagged with the
// appliance, the attribute path and the source of the change so dashboards
// can separate streamed values from polled ones. The write is non-blocking.
//
// Parameters:
//   - applianceID: Unique appliance identifier
//   - attribute: Reported attribute path (e.g. "timeToEnd", "fridge/temperature")
//   - value: The numeric value
//   - source: Origin of the change (stream, poll, deferred, command)
//   - ts: Observation timestamp
func (c *Client) WriteState(applianceID, attribute string, value float64, source string, ts time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"appliance_state",
		map[string]string{
			"appliance_id": applianceID,
			"attribute":    attribute,
			"source":       source,
		},
		map[string]interface{}{
			"value": value,
		},
		ts,
	)
	c.writeAPI.WritePoint(point)
}

// WriteConnectionState records an appliance's cloud connectivity in the
// appliance_connectivity measurement.
//
// Parameters:
//   - applianceID: Appliance identifier
//   - state: The reported connection state string
//   - connected: Whether the state counts as connected
func (c *Client) WriteConnectionState(applianceID string, state string, connected bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"appliance_connectivity",
		map[string]string{
			"appliance_id": applianceID,
		},
		map[string]interface{}{
			"state":     state,
			"connected": connected,
		},
		time.Now(),
	)
	c.writeAPI.WritePoint(point)
}
