package appliance

import "github.com/quennell/appliancelink/internal/catalog"

// State is the full state document for one appliance as returned by the
// vendor API. Reported attribute values live under properties.reported;
// identity metadata lives under applianceData.
type State map[string]any

// Reported returns the reported attribute map, or nil when the document has
// no properties.reported aggregate. The returned map aliases the state.
func (s State) Reported() map[string]any {
	props, _ := s["properties"].(map[string]any)
	if props == nil {
		return nil
	}
	reported, _ := props["reported"].(map[string]any)
	return reported
}

// ApplianceType returns the two-letter appliance type code from
// applianceData, or "" when absent.
func (s State) ApplianceType() string {
	data, _ := s["applianceData"].(map[string]any)
	if data == nil {
		return ""
	}
	code, _ := data["applianceType"].(string)
	return code
}

// ConnectionState returns the top-level connection state, or "" when absent.
func (s State) ConnectionState() string {
	cs, _ := s["connectionState"].(string)
	return cs
}

// Clone deep-copies the state document.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	return State(catalog.CloneInfo(map[string]any(s)))
}

// ensureReported returns the reported map, creating properties.reported if
// either level is missing or not an aggregate.
func (s State) ensureReported() map[string]any {
	props, ok := s["properties"].(map[string]any)
	if !ok {
		props = make(map[string]any)
		s["properties"] = props
	}
	reported, ok := props["reported"].(map[string]any)
	if !ok {
		reported = make(map[string]any)
		props["reported"] = reported
	}
	return reported
}

// deepMerge merges src into dst recursively. Aggregates merge key-wise;
// any other value replaces the destination.
func deepMerge(dst, src map[string]any) {
	for key, value := range src {
		if srcMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				deepMerge(dstMap, srcMap)
				continue
			}
		}
		dst[key] = value
	}
}
