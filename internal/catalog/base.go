package catalog

// enum builds an enumerated value set where every value is plain (no
// per-value flags).
func enum(names ...string) map[string]any {
	values := make(map[string]any, len(names))
	for _, n := range names {
		values[n] = map[string]any{}
	}
	return values
}

// Base is the catalog layer shared by every appliance type.
var Base = Catalog{
	"alerts": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeAlert},
		Category:   CategoryDiagnostic,
		Icon:       "mdi:alert",
	},
	"applianceMode": {
		Capability: map[string]any{
			KeyAccess: "read",
			KeyType:   TypeString,
			KeyValues: enum("DEMO", "NORMAL", "SERVICE"),
		},
		Category:          CategoryDiagnostic,
		Icon:              "mdi:auto-mode",
		DisabledByDefault: true,
	},
	"applianceState": {
		Capability:        map[string]any{KeyAccess: "read", KeyType: TypeString},
		Icon:              "mdi:state-machine",
		DisabledByDefault: true,
	},
	"applianceTotalWorkingTime": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass: DeviceClassDuration,
		Unit:        UnitSeconds,
		Category:    CategoryDiagnostic,
		Icon:        "mdi:timelapse",
	},
	"connectionState": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeString},
		Category:   CategoryDiagnostic,
		Icon:       "mdi:wifi",
	},
	"networkInterface/linkQualityIndicator": {
		Capability: map[string]any{
			KeyAccess: "read",
			KeyType:   TypeString,
			KeyValues: enum("EXCELLENT", "GOOD", "POOR", "UNDEFINED", "VERY_GOOD", "VERY_POOR"),
		},
		Category: CategoryDiagnostic,
		Icon:     "mdi:wifi",
	},
	"networkInterface/niuSwUpdateCurrentDescription": {
		Capability:        map[string]any{KeyAccess: "read", KeyType: TypeString},
		Category:          CategoryDiagnostic,
		Icon:              "mdi:update",
		DisabledByDefault: true,
	},
	"networkInterface/otaState": {
		Capability: map[string]any{
			KeyAccess: "read",
			KeyType:   TypeString,
			KeyValues: enum(
				"DESCRIPTION_AVAILABLE", "DESCRIPTION_DOWNLOADING", "DESCRIPTION_READY",
				"FW_DOWNLOADING", "FW_DOWNLOAD_START", "FW_SIGNATURE_CHECK",
				"FW_UPDATE_IN_PROGRESS", "IDLE", "READY_TO_UPDATE",
				"UPDATE_ABORT", "UPDATE_ERROR", "UPDATE_OK", "WAITINGFORAUTHORIZATION",
			),
		},
		Category: CategoryDiagnostic,
		Icon:     "mdi:update",
	},
	"networkInterface/startUpCommand": {
		Capability: map[string]any{
			KeyAccess: "write",
			KeyType:   TypeString,
			KeyValues: enum("UNINSTALL"),
		},
		Category:          CategoryConfig,
		Icon:              "mdi:restart",
		DisabledByDefault: true,
	},
	"networkInterface/swAncAndRevision": {
		Capability:        map[string]any{KeyAccess: "read", KeyType: TypeString},
		Category:          CategoryDiagnostic,
		Icon:              "mdi:information",
		DisabledByDefault: true,
	},
	"networkInterface/swVersion": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeString},
		Category:   CategoryDiagnostic,
		Icon:       "mdi:information",
	},
}
