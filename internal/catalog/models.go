package catalog

// Per-model override layers. These take precedence over the type layer for
// the exact model string reported by the vendor.

// ModelEHE6899SA adds child lock switches the generic refrigerator layer
// does not expose.
var ModelEHE6899SA = Catalog{
	"uiLockMode": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeBoolean,
			KeyValues: enum("OFF", "ON"),
		},
		DeviceClass:  DeviceClassSwitch,
		Icon:         "mdi:lock",
		FriendlyName: "Child Lock Internal",
	},
	"ui2LockMode": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeBoolean,
			KeyValues: enum("OFF", "ON"),
		},
		DeviceClass:  DeviceClassSwitch,
		Icon:         "mdi:lock",
		FriendlyName: "Child Lock External",
	},
}

// ModelA9 covers the Pure A9 air purifier, which reports no appliance type
// layer of its own.
var ModelA9 = Catalog{
	"Workmode": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeString,
			KeyValues: enum("Auto", "Manual", "PowerOff"),
		},
		Icon: "mdi:fan-auto",
	},
	"Fanspeed": {
		Capability: map[string]any{
			KeyAccess:  "readwrite",
			KeyDefault: 1,
			KeyMax:     9,
			KeyMin:     1,
			KeyStep:    1,
			KeyType:    TypeNumber,
		},
		Icon: "mdi:fan",
	},
	"Ionizer": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeBoolean,
			KeyValues: enum("OFF", "ON"),
		},
		DeviceClass: DeviceClassSwitch,
		Icon:        "mdi:atom",
	},
	"UILight": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeBoolean,
			KeyValues: enum("OFF", "ON"),
		},
		DeviceClass: DeviceClassSwitch,
		Category:    CategoryConfig,
		Icon:        "mdi:lightbulb",
	},
	"SafetyLock": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeBoolean,
			KeyValues: enum("OFF", "ON"),
		},
		DeviceClass: DeviceClassSwitch,
		Category:    CategoryConfig,
		Icon:        "mdi:lock",
	},
	"PM2_5": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		Category:   CategoryDiagnostic,
		Icon:       "mdi:blur",
	},
	"Humidity": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		Category:   CategoryDiagnostic,
		Icon:       "mdi:water-percent",
	},
	"Temp": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass: DeviceClassTemperature,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer",
	},
}
