package catalog

// Oven is the catalog layer for oven type appliances.
var Oven = Catalog{
	"alerts": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeAlert},
		Category:   CategoryDiagnostic,
		Icon:       "mdi:alert",
	},
	"applianceMode": {
		Capability:        map[string]any{KeyAccess: "read", KeyType: TypeString},
		Category:          CategoryDiagnostic,
		DisabledByDefault: true,
	},
	"applianceState": {
		Capability: map[string]any{
			KeyAccess: "read",
			KeyType:   TypeString,
			KeyValues: enum(
				"ALARM", "DELAYED_START", "END_OF_CYCLE", "IDLE",
				"OFF", "PAUSED", "READY_TO_START", "RUNNING",
			),
		},
		Icon:              "mdi:state-machine",
		DisabledByDefault: true,
	},
	"applianceTotalWorkingTime": {
		Capability:        map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass:       DeviceClassDuration,
		Unit:              UnitSeconds,
		Category:          CategoryDiagnostic,
		Icon:              "mdi:timelapse",
		DisabledByDefault: true,
	},
	"applianceType": {
		Capability: map[string]any{
			KeyAccess:       "read",
			KeyType:         TypeString,
			KeyEntitySource: "applianceInfo",
		},
		Category: CategoryDiagnostic,
		Icon:     "mdi:information-outline",
	},
	"capabilityHash": {
		Capability: map[string]any{
			KeyAccess:       "read",
			KeyType:         TypeString,
			KeyEntitySource: "applianceInfo",
		},
		Category:          CategoryDiagnostic,
		Icon:              "mdi:lock",
		DisabledByDefault: true,
	},
	"connectivityState": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeString},
		Category:   CategoryDiagnostic,
		Icon:       "mdi:lan-connect",
	},
	"cpv": {
		Capability:        map[string]any{KeyAccess: "read", KeyType: TypeString},
		Category:          CategoryDiagnostic,
		Icon:              "mdi:numeric",
		DisabledByDefault: true,
	},
	"cavityLight": {
		Capability: map[string]any{
			KeyAccess: "readwrite",
			KeyType:   TypeString,
			KeyValues: enum("OFF", "ON"),
		},
		DeviceClass: DeviceClassSwitch,
		Icon:        "mdi:lightbulb",
	},
	"cyclePhase": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeString},
	},
	"cycleSubPhase": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeString},
	},
	"defrostRoutineState": {
		Capability:        map[string]any{KeyAccess: "read", KeyType: TypeString},
		Category:          CategoryDiagnostic,
		Icon:              "mdi:snowflake-thermometer",
		DisabledByDefault: true,
	},
	"defrostTemperature": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass: DeviceClassTemperature,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer",
	},
	"displayFoodProbeTemperature": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass: DeviceClassTemperature,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer",
	},
	"displayFoodProbeTemperatureC": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeTemperature},
		DeviceClass: DeviceClassTemperature,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer",
	},
	"displayTemperature": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass: DeviceClassTemperature,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer",
	},
	"displayTemperatureC": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeTemperature},
		DeviceClass: DeviceClassTemperature,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer",
	},
	"displayTemperatureF": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeTemperature},
		DeviceClass: DeviceClassTemperature,
		Unit:        UnitFahrenheit,
		Icon:        "mdi:thermometer",
	},
	"executeCommand": {
		Capability: map[string]any{
			KeyAccess: "write",
			KeyType:   TypeString,
			KeyValues: enum("START", "STOPRESET"),
		},
		Icon: "mdi:play-pause",
	},
	"doorState": {
		Capability: map[string]any{
			KeyAccess: "read",
			KeyType:   TypeString,
			KeyValues: enum("CLOSED", "OPEN"),
		},
		DeviceClass: DeviceClassDoor,
		Icon:        "mdi:fridge-variant",
	},
	"foodProbeInsertionState": {
		Capability: map[string]any{
			KeyAccess: "read",
			KeyType:   TypeString,
			KeyValues: enum("INSERTED", "NOT_INSERTED"),
		},
		DeviceClass: DeviceClassPlug,
		Icon:        "mdi:thermometer-probe",
	},
	"foodProbeSupported": {
		Capability: map[string]any{
			KeyAccess: "constant",
			KeyType:   TypeEnum,
			KeyValues: enum("NOT_SUPPORTED", "SUPPORTED"),
		},
		Category:          CategoryDiagnostic,
		Icon:              "mdi:thermometer-probe",
		DisabledByDefault: true,
	},
	"processPhase": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeString},
		Category:   CategoryDiagnostic,
		Icon:       "mdi:state-machine",
	},
	"program": {
		Capability: map[string]any{KeyAccess: "readwrite", KeyType: TypeString},
		Icon:       "mdi:chef-hat",
	},
	"remoteControl": {
		Capability: map[string]any{KeyAccess: "read", KeyType: TypeString},
		Icon:       "mdi:remote",
	},
	"runningTime": {
		Capability:  map[string]any{KeyAccess: "read", KeyDefault: 0, KeyType: TypeNumber},
		DeviceClass: DeviceClassDuration,
		Unit:        UnitSeconds,
		Category:    CategoryDiagnostic,
		Icon:        "mdi:timelapse",
	},
	"startTime": {
		Capability: map[string]any{
			KeyAccess:  "readwrite",
			KeyDefault: "INVALID_OR_NOT_SET_TIME",
			KeyMax:     86340,
			KeyMin:     0,
			KeyStep:    60,
			KeyType:    TypeNumber,
			KeyValues: map[string]any{
				"INVALID_OR_NOT_SET_TIME": map[string]any{KeyDisabled: true},
			},
		},
		Unit: UnitSeconds,
		Icon: "mdi:clock-start",
	},
	"targetDuration": {
		Capability: map[string]any{
			KeyAccess:  "readwrite",
			KeyDefault: 0,
			KeyMax:     86340,
			KeyMin:     0,
			KeyStep:    60,
			KeyType:    TypeNumber,
		},
		Unit: UnitSeconds,
		Icon: "mdi:timelapse",
	},
	"targetFoodProbeTemperatureC": {
		Capability:  map[string]any{KeyAccess: "readwrite", KeyStep: 1.0, KeyType: TypeTemperature},
		DeviceClass: DeviceClassTemperature,
		Platform:    PlatformNumber,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer-probe",
	},
	"targetFoodProbeTemperatureF": {
		Capability:  map[string]any{KeyAccess: "readwrite", KeyStep: 1.0, KeyType: TypeTemperature},
		DeviceClass: DeviceClassTemperature,
		Platform:    PlatformNumber,
		Unit:        UnitFahrenheit,
		Icon:        "mdi:thermometer-probe",
	},
	"targetMicrowavePower": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass: DeviceClassEnergy,
		Unit:        UnitWatt,
		Icon:        "mdi:microwave",
	},
	"targetTemperatureC": {
		Capability:  map[string]any{KeyAccess: "readwrite", KeyType: TypeTemperature},
		DeviceClass: DeviceClassTemperature,
		Platform:    PlatformNumber,
		Unit:        UnitCelsius,
		Icon:        "mdi:thermometer",
	},
	"targetTemperatureF": {
		Capability:  map[string]any{KeyAccess: "readwrite", KeyType: TypeTemperature},
		DeviceClass: DeviceClassTemperature,
		Platform:    PlatformNumber,
		Unit:        UnitFahrenheit,
		Icon:        "mdi:thermometer",
	},
	"timeToEnd": {
		Capability:  map[string]any{KeyAccess: "read", KeyType: TypeNumber},
		DeviceClass: DeviceClassDuration,
		Unit:        UnitMinutes,
		Category:    CategoryDiagnostic,
		Icon:        "mdi:timelapse",
	},
	"waterTankEmpty": {
		Capability: map[string]any{
			KeyAccess: "read",
			KeyType:   TypeString,
			KeyValues: enum("STEAM_TANK_EMPTY", "STEAM_TANK_FULL"),
		},
		DeviceClass: DeviceClassBattery,
		Icon:        "mdi:water",
	},
	"waterTrayInsertionState": {
		Capability: map[string]any{
			KeyAccess: "read",
			KeyType:   TypeString,
			KeyValues: enum("INSERTED", "NOT_INSERTED"),
		},
		DeviceClass: DeviceClassPlug,
		Icon:        "mdi:tray",
	},
	"linkQualityIndicator": {
		Capability: map[string]any{
			KeyAccess:       "read",
			KeyType:         TypeString,
			KeyEntitySource: "networkInterface",
		},
		Category: CategoryDiagnostic,
		Icon:     "mdi:wifi-strength-3",
	},
	"otaState": {
		Capability: map[string]any{
			KeyAccess:       "read",
			KeyType:         TypeString,
			KeyEntitySource: "networkInterface",
		},
		Category: CategoryDiagnostic,
		Icon:     "mdi:update",
	},
	"swVersion": {
		Capability: map[string]any{
			KeyAccess:       "read",
			KeyType:         TypeString,
			KeyEntitySource: "networkInterface",
		},
		Category: CategoryDiagnostic,
		Icon:     "mdi:information-outline",
	},
}
