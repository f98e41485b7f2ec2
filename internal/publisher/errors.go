package publisher

import "errors"

var (
	// ErrInvalidCommandTopic indicates a command arrived on a topic that
	// doesn't match the expected appliance command shape.
	ErrInvalidCommandTopic = errors.New("invalid command topic")

	// ErrInvalidCommand indicates a malformed or unsupported command payload.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrUnknownEntity indicates the command named an entity that isn't
	// mapped for the appliance.
	ErrUnknownEntity = errors.New("unknown entity")
)
