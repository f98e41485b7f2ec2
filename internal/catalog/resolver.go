package catalog

// Appliance type codes reported by the vendor in applianceData.applianceType.
const (
	TypeCodeOven         = "OV"
	TypeCodeRefrigerator = "CR"
	TypeCodeWasher       = "WM"
)

// ByType maps the two-letter appliance type code to its catalog layer.
var ByType = map[string]Catalog{
	TypeCodeOven:         Oven,
	TypeCodeRefrigerator: Refrigerator,
	TypeCodeWasher:       Washer,
}

// ByModel maps exact model strings to their override layer.
var ByModel = map[string]Catalog{
	"EHE6899SA": ModelEHE6899SA,
	"A9":        ModelA9,
}

// Resolve merges the catalog layers for one appliance in increasing
// precedence: base, appliance type, model. A later layer replaces the whole
// descriptor at the same path; there is no field-level merging. Unknown type
// or model codes are simply absent from their layer, so the result falls
// back to the lower layers without error.
//
// The returned catalog is an independent copy; callers may cache it for the
// appliance's lifetime.
func Resolve(applianceType, model string) Catalog {
	merged := make(Catalog, len(Base))
	for path, desc := range Base {
		merged[path] = desc.Clone()
	}
	if layer, ok := ByType[applianceType]; ok {
		for path, desc := range layer {
			merged[path] = desc.Clone()
		}
	}
	if layer, ok := ByModel[model]; ok {
		for path, desc := range layer {
			merged[path] = desc.Clone()
		}
	}
	return merged
}
