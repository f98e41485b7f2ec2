package catalog

// Refrigerator is the catalog layer for refrigerator type appliances. All
// paths are nested under the freezer or fridge compartment aggregate.
var Refrigerator = Catalog{
	"freezer/alerts": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeAlert},
		Category:   CategoryDiagnostic,
		Icon:       "mdi:alert",
	},
	"freezer/applianceState": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeString},
		Icon:       "mdi:fridge-variant",
	},
	"freezer/doorState": {
		Capability: map[string]any{
			KeyAccess: "read",
			KeyType:   TypeString,
			KeyValues: enum("CLOSED", "OPEN"),
		},
		DeviceClass: DeviceClassDoor,
		Icon:        "mdi:fridge-variant",
	},
	"freezer/fastMode": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeString,
			KeyValues: enum("OFF", "ON"),
		},
		DeviceClass: DeviceClassSwitch,
		Icon:        "mdi:fridge-variant",
	},
	"freezer/fastModeTimeToEnd": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass: DeviceClassDuration,
		Unit:        UnitSeconds,
		Category:    CategoryDiagnostic,
		Icon:        "mdi:fridge-variant",
	},
	"freezer/targetTemperatureC": {
		Capability: map[string]any{
			KeyAccess:  "readwrite",
			KeyDefault: -18.0,
			KeyMax:     -13.0,
			KeyMin:     -24.0,
			KeyStep:    1.0,
			KeyType:    TypeTemperature,
		},
		DeviceClass: DeviceClassTemperature,
		Platform:    PlatformNumber,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer",
	},
	"fridge/alerts": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeAlert},
		Category:   CategoryDiagnostic,
		Icon:       "mdi:alert",
	},
	"fridge/applianceState": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeString},
		Icon:       "mdi:fridge-variant",
	},
	"fridge/doorState": {
		Capability: map[string]any{
			KeyAccess: "read",
			KeyType:   TypeString,
			KeyValues: enum("CLOSED", "OPEN"),
		},
		DeviceClass: DeviceClassDoor,
		Icon:        "mdi:fridge-variant",
	},
	"fridge/fastMode": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeString,
			KeyValues: enum("OFF", "ON"),
		},
		DeviceClass: DeviceClassSwitch,
		Icon:        "mdi:fridge-variant",
	},
	"fridge/fastModeTimeToEnd": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass: DeviceClassDuration,
		Unit:        UnitSeconds,
		Category:    CategoryDiagnostic,
		Icon:        "mdi:fridge-variant",
	},
	"fridge/targetTemperatureC": {
		Capability: map[string]any{
			KeyAccess:  "readwrite",
			KeyDefault: 4.0,
			KeyMax:     8.0,
			KeyMin:     2.0,
			KeyStep:    1.0,
			KeyType:    TypeTemperature,
		},
		DeviceClass: DeviceClassTemperature,
		Platform:    PlatformNumber,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer",
	},
}
