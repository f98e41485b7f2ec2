package entity

import (
	"context"
	"math"
	"strings"

	"github.com/quennell/appliancelink/internal/catalog"
)

// Hard safety fallbacks applied when neither the program table nor the
// global capability declares a bound.
const (
	fallbackMin         = 0.0
	fallbackMax         = 100.0
	fallbackMaxCelsius  = 300.0
	fallbackStep        = 1.0
	invalidTimeSentinel = "INVALID_OR_NOT_SET_TIME"
)

// Number is the numeric view of an entity. Bounds and availability are
// resolved at read time against the currently selected program.
type Number struct {
	*Entity
}

// AsNumber returns the numeric view, or ErrWrongKind for other entity kinds.
func (e *Entity) AsNumber() (*Number, error) {
	if e.Kind != catalog.PlatformNumber {
		return nil, ErrWrongKind
	}
	return &Number{Entity: e}, nil
}

// DisplayUnit returns the unit values are presented in. Attributes stored
// in seconds display as minutes.
func (n *Number) DisplayUnit() catalog.Unit {
	if n.Unit == catalog.UnitSeconds {
		return catalog.UnitMinutes
	}
	return n.Unit
}

func (n *Number) timeValued() bool {
	return n.Unit == catalog.UnitSeconds || n.Unit == catalog.UnitMinutes
}

// programConstraint looks up a numeric bound for this attribute under the
// currently selected program. Program tables carry time bounds in native
// seconds; the result is converted to the display unit.
func (n *Number) programConstraint(key string) (float64, bool) {
	program, _ := n.app.ReportedValue("program")
	current, _ := program.(string)
	if current == "" {
		return 0, false
	}
	table, _ := programTable(n.app.Capabilities(), current)
	if table == nil {
		return 0, false
	}
	entityCap, _ := table[n.Attr].(map[string]any)
	value, ok := catalog.InfoNumber(entityCap, key)
	if !ok {
		return 0, false
	}
	if n.timeValued() {
		value = SecondsToMinutes(value)
	}
	return value, true
}

// globalBound reads a bound from the merged capability info, converting
// seconds to display minutes.
func (n *Number) globalBound(key string) (float64, bool) {
	value, ok := catalog.InfoNumber(n.Capability, key)
	if !ok {
		return 0, false
	}
	if n.Unit == catalog.UnitSeconds {
		value = SecondsToMinutes(value)
	}
	return value, true
}

// MinValue resolves the effective minimum in the display unit.
func (n *Number) MinValue() float64 {
	if v, ok := n.programConstraint(catalog.KeyMin); ok {
		return v
	}
	if v, ok := n.globalBound(catalog.KeyMin); ok {
		return v
	}
	return fallbackMin
}

// MaxValue resolves the effective maximum in the display unit.
func (n *Number) MaxValue() float64 {
	if v, ok := n.programConstraint(catalog.KeyMax); ok {
		return v
	}
	if v, ok := n.globalBound(catalog.KeyMax); ok {
		return v
	}
	if n.Unit == catalog.UnitCelsius {
		return fallbackMaxCelsius
	}
	return fallbackMax
}

// StepValue resolves the effective step in the display unit.
func (n *Number) StepValue() float64 {
	if v, ok := n.programConstraint(catalog.KeyStep); ok {
		return v
	}
	if v, ok := n.globalBound(catalog.KeyStep); ok {
		return v
	}
	return fallbackStep
}

// Value returns the current value in the display unit. The second return is
// false when the attribute is not supported by the current program or no
// value can be derived.
//
// Missing or zero readings fall back to the capability default (the invalid
// time sentinel maps to the resolved minimum), then to the last cached
// value. The result is clamped into the resolved range.
func (n *Number) Value() (float64, bool) {
	if !n.SupportedByProgram() {
		return 0, false
	}

	value := 0.0
	if raw, ok := n.RawValue(); ok {
		if v, isNum := catalog.AsNumber(raw); isNum {
			value = v
			if n.Unit == catalog.UnitSeconds {
				value = SecondsToMinutes(value)
			}
		}
	}

	sentinel := false
	if value == 0 {
		if def, ok := catalog.InfoDefault(n.Capability); ok {
			if def == invalidTimeSentinel {
				// An unset timer reads as the resolved minimum, even
				// when that minimum is zero.
				value = n.MinValue()
				sentinel = true
			} else if v, isNum := catalog.AsNumber(def); isNum {
				value = v
			}
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if value == 0 && !sentinel {
		if !n.hasCached {
			return 0, false
		}
		return n.cachedValue, true
	}

	if n.Unit == catalog.UnitCelsius || n.Unit == catalog.UnitFahrenheit {
		value = math.Round(value*100) / 100
	} else if n.timeValued() && value < 0 {
		// The vendor reports negative values for disabled timers.
		value = 0
	}

	if min := n.MinValue(); value < min {
		value = min
	}
	if max := n.MaxValue(); value > max {
		value = max
	}

	n.cachedValue = value
	n.hasCached = true
	return value, true
}

// SetValue validates, constrains and transmits a new value given in the
// display unit.
//
// The write is rejected when the current program does not permit the
// attribute, when the food probe precondition is unmet, or when the
// appliance reports remote control as disabled. The value is converted to
// the vendor's native unit, clamped to the resolved bounds and rounded to
// the nearest step from the minimum before transmission.
func (n *Number) SetValue(ctx context.Context, exec CommandExecutor, display float64) error {
	if !n.SupportedByProgram() {
		if n.Attr == "targetFoodProbeTemperatureC" {
			if state, ok := n.app.ReportedValue("foodProbeInsertionState"); ok && state == "NOT_INSERTED" {
				return ErrProbeNotInserted
			}
		}
		n.logger.Warn("rejecting write not supported by program",
			"appliance_id", n.app.ID, "attr", n.Attr)
		return ErrUnsupportedOperation
	}

	if rc, ok := n.app.ReportedValue("remoteControl"); ok && rc != nil {
		status, _ := rc.(string)
		if !strings.Contains(status, "ENABLED") || strings.Contains(status, "DISABLED") {
			n.logger.Warn("rejecting write with remote control off",
				"appliance_id", n.app.ID, "attr", n.Attr, "status", status)
			return ErrRemoteDisabled
		}
	}

	native := display
	min, max, step := n.MinValue(), n.MaxValue(), n.StepValue()
	if n.timeValued() {
		native = MinutesToSeconds(native)
		min = MinutesToSeconds(min)
		max = MinutesToSeconds(max)
		step = MinutesToSeconds(step)
	}

	constrained := ClampToStep(native, min, max, step)

	var payload any = constrained
	if constrained == math.Trunc(constrained) {
		payload = int(constrained)
	}

	command, err := n.BuildCommand(payload)
	if err != nil {
		return err
	}
	if err := exec.ExecuteCommand(ctx, n.app.ID, command); err != nil {
		return err
	}

	cached := constrained
	if n.timeValued() {
		cached = SecondsToMinutes(cached)
	}
	n.mu.Lock()
	n.cachedValue = cached
	n.hasCached = true
	n.mu.Unlock()

	n.logger.Debug("value transmitted",
		"appliance_id", n.app.ID, "attr", n.Attr, "value", constrained)
	return nil
}
