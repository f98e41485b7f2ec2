// Package influxdb stores appliance telemetry in InfluxDB v2.
//
// Numeric reported attributes (cycle times, temperatures, spin speeds) land
// in the appliance_state measurement, cloud connectivity in
// appliance_connectivity. The Recorder adapts the client to the
// coordinator's state sink interface, so every applied update is flattened
// into per-attribute points alongside the SQLite audit trail.
//
// Writes are batched and non-blocking; a down InfluxDB never stalls state
// processing. Async write failures reach the callback set via SetOnError.
//
// Usage:
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	coordinator.AddSink(influxdb.NewRecorder(client))
package influxdb
