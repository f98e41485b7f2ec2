package cloud

// Event is one normalised state change pushed by the vendor stream.
//
// Incremental events carry Property and Value; bulk events carry Data.
// Exactly one of the two forms is populated.
type Event struct {
	ApplianceID string

	// Property and Value describe a single-attribute increment. Property
	// may contain slashes for nested attributes.
	Property string
	Value    any

	// Data is the bulk reported document for full-document events.
	Data map[string]any
}

// Incremental reports whether the event is a single-property update.
func (e Event) Incremental() bool {
	return e.Property != ""
}

// Envelope keys stripped when a bulk payload carries the reported document
// at its top level.
var envelopeKeys = []string{"applianceId", "appliance_id", "userId", "timestamp"}

// ParseEvent normalises a raw stream payload into an Event.
//
// Two shapes are accepted:
//
//	{"applianceId": "...", "property": "doorState", "value": "OPEN"}
//	{"applianceId": "...", "data": {...}}  (or "state", or inline)
//
// Inline bulk payloads are the whole document minus envelope keys. A payload
// without an appliance identifier fails with ErrNoApplianceID.
func ParseEvent(payload map[string]any) (Event, error) {
	id, _ := payload["applianceId"].(string)
	if id == "" {
		id, _ = payload["appliance_id"].(string)
	}
	if id == "" {
		return Event{}, ErrNoApplianceID
	}

	property, hasProperty := payload["property"].(string)
	value, hasValue := payload["value"]
	if hasProperty && property != "" && hasValue {
		return Event{ApplianceID: id, Property: property, Value: value}, nil
	}

	data, _ := payload["data"].(map[string]any)
	if data == nil {
		data, _ = payload["state"].(map[string]any)
	}
	if data == nil {
		data = make(map[string]any, len(payload))
		for k, v := range payload {
			if !isEnvelopeKey(k) {
				data[k] = v
			}
		}
	}
	return Event{ApplianceID: id, Data: data}, nil
}

func isEnvelopeKey(key string) bool {
	for _, k := range envelopeKeys {
		if key == k {
			return true
		}
	}
	return false
}
