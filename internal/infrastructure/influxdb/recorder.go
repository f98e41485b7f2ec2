package influxdb

import (
	"context"
	"strings"
	"time"

	"github.com/quennell/appliancelink/internal/appliance"
	"github.com/quennell/appliancelink/internal/catalog"
)

// Recorder adapts the InfluxDB client to the coordinator's state sink
// interface. Every applied update is flattened into per-attribute points so
// numeric telemetry (cycle times, temperatures, spin speeds) lands in the
// time-series store alongside the SQLite audit trail.
type Recorder struct {
	client *Client
}

// NewRecorder creates a state recorder backed by the given client.
func NewRecorder(client *Client) *Recorder {
	return &Recorder{client: client}
}

// RecordState writes the numeric reported values of a state snapshot.
//
// Non-numeric attributes are skipped; the SQLite history keeps the full
// document. Writes are non-blocking and never fail the update path, so the
// error return is always nil while the client is connected.
func (r *Recorder) RecordState(_ context.Context, applianceID string, state appliance.State, source string) error {
	if !r.client.IsConnected() {
		return ErrNotConnected
	}

	now := time.Now()
	reported := state.Reported()
	for attr, value := range reported {
		if nested, ok := value.(map[string]any); ok {
			for child, childValue := range nested {
				r.writeNumeric(applianceID, attr+catalog.PathSeparator+child, childValue, source, now)
			}
			continue
		}
		r.writeNumeric(applianceID, attr, value, source, now)
	}

	if cs := state.ConnectionState(); cs != "" {
		r.client.WriteConnectionState(applianceID, cs, strings.EqualFold(cs, "connected"))
	}

	return nil
}

func (r *Recorder) writeNumeric(applianceID, attribute string, value any, source string, ts time.Time) {
	v, ok := catalog.AsNumber(value)
	if !ok {
		return
	}
	r.client.WriteState(applianceID, attribute, v, source, ts)
}
