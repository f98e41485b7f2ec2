package appliance

import "errors"

// Domain errors for the appliance package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, appliance.ErrNotFound) {
//	    // handle not found case
//	}
var (
	// ErrNotFound is returned when an appliance ID does not exist.
	ErrNotFound = errors.New("appliance: not found")

	// ErrExists is returned when adding an appliance with an ID that already exists.
	ErrExists = errors.New("appliance: already exists")

	// ErrPathConflict is returned when a partial update would descend through
	// a non-aggregate value.
	ErrPathConflict = errors.New("appliance: path conflicts with scalar value")

	// ErrEmptyPath is returned when a partial update names no attribute.
	ErrEmptyPath = errors.New("appliance: empty attribute path")
)
