package entity

import "errors"

// Domain errors for the entity package.
var (
	// ErrUnsupportedOperation is returned when a command targets an
	// attribute the current program does not permit.
	ErrUnsupportedOperation = errors.New("entity: not supported by current program")

	// ErrRemoteDisabled is returned when the appliance reports remote
	// control as disabled.
	ErrRemoteDisabled = errors.New("entity: remote control disabled")

	// ErrProbeNotInserted is returned when setting a food probe temperature
	// while the probe is not inserted.
	ErrProbeNotInserted = errors.New("entity: food probe not inserted")

	// ErrMissingProgramID is returned when a program-scoped command cannot
	// resolve the current program identifier.
	ErrMissingProgramID = errors.New("entity: missing program id")

	// ErrWrongKind is returned when a typed view is requested for an entity
	// of another kind.
	ErrWrongKind = errors.New("entity: wrong entity kind")
)
