package sync

import (
	"context"

	"github.com/quennell/appliancelink/internal/appliance"
)

// Notifier receives host-facing change signals from the coordinator.
type Notifier interface {
	// StateChanged fires after one appliance's state was updated.
	StateChanged(applianceID string)

	// AppliancesChanged fires after the tracked appliance set changed.
	AppliancesChanged()
}

// NoopNotifier discards all signals.
type NoopNotifier struct{}

func (NoopNotifier) StateChanged(string) {}
func (NoopNotifier) AppliancesChanged()  {}

// StateSink persists appliance state snapshots. appliance.HistoryRepository
// and the time-series recorder both satisfy this.
type StateSink interface {
	RecordState(ctx context.Context, applianceID string, state appliance.State, source string) error
}
