package catalog

import "strings"

// PathSeparator delimits nested segments in an attribute path,
// e.g. "userSelections/analogTemperature" or "freezer/doorState".
const PathSeparator = "/"

// Access describes how a capability value may be read or written.
type Access string

// Access constants.
const (
	AccessRead      Access = "read"
	AccessWrite     Access = "write"
	AccessReadWrite Access = "readwrite"

	// AccessConstant marks values the vendor reports once and never updates.
	// Constant values survive bulk state merges unless explicitly targeted.
	AccessConstant Access = "constant"
)

// Value type strings used in capability info maps.
const (
	TypeBoolean     = "boolean"
	TypeNumber      = "number"
	TypeInt         = "int"
	TypeString      = "string"
	TypeTemperature = "temperature"
	TypeEnum        = "enum"
	TypeAlert       = "alert"
)

// Well-known keys inside a capability info map. The vendor API reports
// capability metadata as a free-form JSON object; catalog descriptors use the
// same representation so the two can be merged key-wise.
const (
	KeyAccess       = "access"
	KeyType         = "type"
	KeyMin          = "min"
	KeyMax          = "max"
	KeyStep         = "step"
	KeyDefault      = "default"
	KeyValues       = "values"
	KeyDisabled     = "disabled"
	KeyTriggers     = "triggers"
	KeyEntitySource = "entity_source"
)

// Platform identifies the concrete entity kind an attribute is exposed as.
type Platform string

// Platform constants. This is a closed set: mapping never produces any
// other value.
const (
	PlatformBinarySensor Platform = "binary_sensor"
	PlatformButton       Platform = "button"
	PlatformNumber       Platform = "number"
	PlatformSensor       Platform = "sensor"
	PlatformSwitch       Platform = "switch"
)

// DeviceClass is a semantic classification for an entity. The value is
// namespaced with the platform it implies ("binary_sensor.door"), so a
// descriptor carrying a device class deterministically selects the entity
// platform.
type DeviceClass string

// Device class constants.
const (
	DeviceClassNone DeviceClass = ""

	DeviceClassDoor    DeviceClass = "binary_sensor.door"
	DeviceClassPlug    DeviceClass = "binary_sensor.plug"
	DeviceClassBattery DeviceClass = "binary_sensor.battery"
	DeviceClassProblem DeviceClass = "binary_sensor.problem"

	DeviceClassRestart DeviceClass = "button.restart"

	DeviceClassDuration    DeviceClass = "sensor.duration"
	DeviceClassEnergy      DeviceClass = "sensor.energy"
	DeviceClassTemperature DeviceClass = "sensor.temperature"

	DeviceClassSwitch DeviceClass = "switch.switch"
)

// Platform returns the entity platform implied by the device class, or ""
// for DeviceClassNone.
func (d DeviceClass) Platform() Platform {
	if d == DeviceClassNone {
		return ""
	}
	prefix, _, ok := strings.Cut(string(d), ".")
	if !ok {
		return ""
	}
	return Platform(prefix)
}

// Category assigns an entity to a UI grouping.
type Category string

// Category constants.
const (
	CategoryNone       Category = ""
	CategoryConfig     Category = "config"
	CategoryDiagnostic Category = "diagnostic"
)

// Unit is the unit of measurement for numeric values.
type Unit string

// Unit constants.
const (
	UnitNone    Unit = ""
	UnitSeconds Unit = "s"
	UnitMinutes Unit = "min"
	UnitCelsius Unit = "°C"

	UnitFahrenheit Unit = "°F"
	UnitWatt       Unit = "W"
	UnitRPM        Unit = "RPM"
)

// Descriptor describes how one vendor attribute is presented as an entity.
//
// Capability mirrors the shape of the vendor's live capability metadata;
// during mapping its entries take precedence over the live values key-wise.
type Descriptor struct {
	// Capability holds access/type/bounds/default/values metadata. It may be
	// nil for descriptors that only decorate live capability info.
	Capability map[string]any

	DeviceClass DeviceClass
	Unit        Unit
	Category    Category
	Icon        string

	// Platform pins the entity platform, overriding all inference and the
	// device class. Empty means infer.
	Platform Platform

	// ValueNamed names each multi-instance entity after its command value
	// instead of the attribute path.
	ValueNamed bool

	// IconsByValue overrides the icon per command value for multi-instance
	// attributes.
	IconsByValue map[string]string

	// FriendlyName overrides the display name derived from the path.
	FriendlyName string

	// DisabledByDefault hides the entity from the host registry until the
	// user enables it.
	DisabledByDefault bool
}

// Clone returns a copy of the descriptor with its capability map deep-copied,
// so merged catalogs never alias the static layer tables.
func (d Descriptor) Clone() Descriptor {
	cpy := d
	cpy.Capability = CloneInfo(d.Capability)
	if d.IconsByValue != nil {
		icons := make(map[string]string, len(d.IconsByValue))
		for k, v := range d.IconsByValue {
			icons[k] = v
		}
		cpy.IconsByValue = icons
	}
	return cpy
}

// Catalog maps attribute paths to descriptors. Paths are unique per layer.
type Catalog map[string]Descriptor

// CloneInfo deep-copies a capability info map, including nested maps and
// slices. Scalars are copied by value.
func CloneInfo(info map[string]any) map[string]any {
	if info == nil {
		return nil
	}
	cpy := make(map[string]any, len(info))
	for k, v := range info {
		cpy[k] = cloneValue(v)
	}
	return cpy
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneInfo(val)
	case []any:
		cpy := make([]any, len(val))
		for i, elem := range val {
			cpy[i] = cloneValue(elem)
		}
		return cpy
	default:
		return v
	}
}
