package catalog

// Typed accessors for capability info maps. The vendor API and the static
// catalogs both represent capability metadata as map[string]any; these
// helpers centralise the type assertions.

// InfoAccess returns the access mode declared in a capability info map.
// Missing or malformed access defaults to read.
func InfoAccess(info map[string]any) Access {
	if info == nil {
		return AccessRead
	}
	if s, ok := info[KeyAccess].(string); ok && s != "" {
		return Access(s)
	}
	return AccessRead
}

// InfoType returns the declared value type, or "" when absent.
func InfoType(info map[string]any) string {
	if info == nil {
		return ""
	}
	s, _ := info[KeyType].(string)
	return s
}

// InfoNumber extracts a numeric field (min, max, step, default) from a
// capability info map. JSON decoding yields float64; int is accepted for
// values originating from catalog literals.
func InfoNumber(info map[string]any, key string) (float64, bool) {
	if info == nil {
		return 0, false
	}
	return AsNumber(info[key])
}

// AsNumber converts a scalar of any numeric Go type to float64.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// InfoValues returns the enumerated value set, or nil when absent.
func InfoValues(info map[string]any) map[string]any {
	if info == nil {
		return nil
	}
	values, _ := info[KeyValues].(map[string]any)
	return values
}

// InfoEntitySource returns the alternate state aggregate the entity should
// read from, or "" when the attribute lives at its own path.
func InfoEntitySource(info map[string]any) string {
	if info == nil {
		return ""
	}
	s, _ := info[KeyEntitySource].(string)
	return s
}

// InfoDefault returns the declared default value, which may be of any type.
func InfoDefault(info map[string]any) (any, bool) {
	if info == nil {
		return nil, false
	}
	v, ok := info[KeyDefault]
	return v, ok
}
