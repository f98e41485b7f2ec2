package cloud

import (
	"errors"
	"strings"
)

// Domain errors for the cloud package.
var (
	// ErrNotConnected is returned when an operation requires an active
	// stream connection.
	ErrNotConnected = errors.New("cloud: stream not connected")

	// ErrNoApplianceID is returned when an event payload carries no
	// appliance identifier.
	ErrNoApplianceID = errors.New("cloud: event has no appliance id")

	// ErrRequestFailed is returned when the vendor API responds with a
	// non-success status.
	ErrRequestFailed = errors.New("cloud: request failed")
)

// authKeywords classify vendor errors as authentication failures. The
// vendor API surfaces auth problems as free-text messages rather than
// typed errors, so matching is by substring. Only status-bearing phrases
// qualify: looser words like "auth" or "token" also appear in proxy and
// parser messages that must stay retryable.
var authKeywords = []string{
	"401",
	"unauthorized",
	"forbidden",
	"invalid grant",
}

// IsAuthError reports whether an error from the vendor API indicates an
// authentication failure requiring re-login.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, kw := range authKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
