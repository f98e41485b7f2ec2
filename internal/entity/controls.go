package entity

import (
	"context"

	"github.com/quennell/appliancelink/internal/catalog"
)

// Switch is the on/off view of a readwrite boolean-style entity.
type Switch struct {
	*Entity
}

// AsSwitch returns the switch view, or ErrWrongKind for other entity kinds.
func (e *Entity) AsSwitch() (*Switch, error) {
	if e.Kind != catalog.PlatformSwitch {
		return nil, ErrWrongKind
	}
	return &Switch{Entity: e}, nil
}

// IsOn reports the switch position. Vendors report either the enumerated
// "ON"/"OFF" strings or raw booleans.
func (s *Switch) IsOn() bool {
	raw, ok := s.RawValue()
	if !ok {
		return false
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		return v == "ON"
	}
	return false
}

// TurnOn switches the attribute on.
func (s *Switch) TurnOn(ctx context.Context, exec CommandExecutor) error {
	return s.send(ctx, exec, "ON")
}

// TurnOff switches the attribute off.
func (s *Switch) TurnOff(ctx context.Context, exec CommandExecutor) error {
	return s.send(ctx, exec, "OFF")
}

func (s *Switch) send(ctx context.Context, exec CommandExecutor, state string) error {
	var value any = state
	if catalog.InfoType(s.Capability) == catalog.TypeBoolean {
		if _, enumerated := catalog.InfoValues(s.Capability)[state]; !enumerated {
			value = state == "ON"
		}
	}
	command, err := s.BuildCommand(value)
	if err != nil {
		return err
	}
	return exec.ExecuteCommand(ctx, s.app.ID, command)
}

// Button is the press view of a write-only enumerated entity. Each entity
// instance carries one command value.
type Button struct {
	*Entity
}

// AsButton returns the button view, or ErrWrongKind for other entity kinds.
func (e *Entity) AsButton() (*Button, error) {
	if e.Kind != catalog.PlatformButton {
		return nil, ErrWrongKind
	}
	return &Button{Entity: e}, nil
}

// Press transmits the entity's command value.
func (b *Button) Press(ctx context.Context, exec CommandExecutor) error {
	command, err := b.BuildCommand(b.ValueToSend)
	if err != nil {
		return err
	}
	return exec.ExecuteCommand(ctx, b.app.ID, command)
}

// BinarySensor is the boolean view of a read-only two-valued entity.
type BinarySensor struct {
	*Entity
}

// AsBinarySensor returns the binary sensor view, or ErrWrongKind for other
// entity kinds.
func (e *Entity) AsBinarySensor() (*BinarySensor, error) {
	if e.Kind != catalog.PlatformBinarySensor {
		return nil, ErrWrongKind
	}
	return &BinarySensor{Entity: e}, nil
}

// positiveValues maps each binary device class to the reported value that
// reads as "on".
var positiveValues = map[catalog.DeviceClass]string{
	catalog.DeviceClassDoor:    "OPEN",
	catalog.DeviceClassPlug:    "INSERTED",
	catalog.DeviceClassBattery: "STEAM_TANK_EMPTY",
}

// IsOn reports the sensor state according to its device class.
func (s *BinarySensor) IsOn() bool {
	raw, ok := s.RawValue()
	if !ok {
		return false
	}
	if v, isBool := raw.(bool); isBool {
		return v
	}
	if positive, classed := positiveValues[s.DeviceClass]; classed {
		return raw == positive
	}
	return false
}
