package catalog

// Washer is the catalog layer for washing machine type appliances.
var Washer = Catalog{
	"defaultExtraRinse": {
		Capability: map[string]any{
			KeyAccess:  "readwrite",
			KeyDefault: 0,
			KeyMax:     3,
			KeyMin:     0,
			KeyStep:    1,
			KeyType:    TypeNumber,
		},
		Icon: "mdi:washing-machine",
	},
	"executeCommand": {
		Capability: map[string]any{
			KeyAccess: "write",
			KeyType:   TypeString,
			KeyValues: enum("START", "STOPRESET"),
		},
		DeviceClass: DeviceClassRestart,
		Icon:        "mdi:play-pause",
	},
	"preWashPhase": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeBoolean},
		Icon:       "mdi:washing-machine",
	},
	"reminderTime": {
		Capability: map[string]any{
			KeyAccess:  "readwrite",
			KeyDefault: 1200,
			KeyMax:     2700,
			KeyMin:     1200,
			KeyStep:    60,
			KeyType:    TypeNumber,
		},
		DeviceClass:       DeviceClassDuration,
		Platform:          PlatformNumber,
		Unit:              UnitSeconds,
		Category:          CategoryDiagnostic,
		Icon:              "mdi:timelapse",
		DisabledByDefault: true,
	},
	"totalWashingTime": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass: DeviceClassDuration,
		Unit:        UnitMinutes,
		Icon:        "mdi:timelapse",
	},
	"uiLockMode": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeBoolean,
			KeyValues: enum("OFF", "ON"),
		},
		Icon: "mdi:lock",
	},
	"ui2LockMode": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeBoolean,
			KeyValues: enum("OFF", "ON"),
		},
		Icon: "mdi:lock",
	},
	"userSelections/analogSpinSpeed": {
		Capability: map[string]any{
			KeyAccess:  "readwrite",
			KeyDefault: 1200,
			KeyMax:     1600,
			KeyMin:     400,
			KeyStep:    100,
			KeyType:    TypeNumber,
		},
		Unit: UnitRPM,
		Icon: "mdi:rotate-right",
	},
	"userSelections/analogTemperature": {
		Capability: map[string]any{
			KeyAccess:  "readwrite",
			KeyDefault: 40,
			KeyMax:     90,
			KeyMin:     0,
			KeyStep:    10,
			KeyType:    TypeNumber,
		},
		DeviceClass: DeviceClassTemperature,
		Platform:    PlatformNumber,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer",
	},
	"userSelections/programUID": {
		Capability: map[string]any{KeyAccess: "readwrite", KeyType: TypeString},
		Icon:       "mdi:tune",
	},
	"userSelections/steamValue": {
		Capability: map[string]any{
			KeyAccess:  "readwrite",
			KeyDefault: 0,
			KeyMax:     3,
			KeyMin:     0,
			KeyStep:    1,
			KeyType:    TypeNumber,
		},
		Icon: "mdi:weather-partly-cloudy",
	},
	"vacationHolidayMode": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeBoolean,
			KeyValues: enum("OFF", "ON"),
		},
		Icon: "mdi:airplane",
	},
}
