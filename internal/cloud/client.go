package cloud

import "context"

// Logger interface for optional logging support.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// ApplianceSummary is one entry from the appliance listing endpoint.
type ApplianceSummary struct {
	ID              string `json:"applianceId"`
	Name            string `json:"applianceName"`
	ConnectionState string `json:"connectionState"`
}

// ApplianceInfo is the static identity record for one appliance.
type ApplianceInfo struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// APIClient is the vendor REST surface used by the synchronization
// coordinator.
//
// Implementations must be safe for concurrent use; discovery fans out
// per-appliance fetches in parallel.
type APIClient interface {
	// ListAppliances returns the account's appliances with their current
	// connection state.
	ListAppliances(ctx context.Context) ([]ApplianceSummary, error)

	// GetApplianceState fetches the full state document for one appliance.
	GetApplianceState(ctx context.Context, applianceID string) (map[string]any, error)

	// GetApplianceCapabilities fetches the live capability document. Some
	// appliances report none; implementations return an empty map then.
	GetApplianceCapabilities(ctx context.Context, applianceID string) (map[string]any, error)

	// GetApplianceInfo fetches the static identity record.
	GetApplianceInfo(ctx context.Context, applianceID string) (*ApplianceInfo, error)

	// ExecuteCommand sends a command payload to one appliance.
	ExecuteCommand(ctx context.Context, applianceID string, command map[string]any) error

	// Close releases client resources.
	Close() error
}
