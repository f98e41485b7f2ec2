package appliance

import (
	"strings"
	"sync"

	"github.com/quennell/appliancelink/internal/catalog"
)

// Observer is notified after an appliance's state changes. Implementations
// must not block; they are called synchronously from the update path.
type Observer interface {
	StateUpdated()
}

// Appliance holds the identity, live state and capability metadata for one
// vendor appliance.
//
// All public methods are thread-safe. State updates arrive concurrently from
// the event stream, the polling fallback and deferred refetches.
type Appliance struct {
	ID    string
	Name  string
	Brand string
	Model string

	mu           sync.RWMutex
	state        State
	capabilities map[string]any
	catalog      catalog.Catalog
	observers    []Observer
	logger       Logger
}

// New creates an appliance from its discovery identity and initial state.
// The effective catalog is resolved once from the appliance type code in the
// state document and the model string, and cached for the appliance's
// lifetime.
func New(id, name, brand, model string, state State) *Appliance {
	if state == nil {
		state = State{}
	}
	return &Appliance{
		ID:      id,
		Name:    name,
		Brand:   brand,
		Model:   model,
		state:   state,
		catalog: catalog.Resolve(state.ApplianceType(), model),
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the appliance.
func (a *Appliance) SetLogger(logger Logger) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.logger = logger
}

// Catalog returns the effective catalog resolved for this appliance.
// The catalog is immutable after construction.
func (a *Appliance) Catalog() catalog.Catalog {
	return a.catalog
}

// SetCapabilities stores the live capability document reported by the vendor.
// A nil document is valid; mapping then falls back to the catalog alone.
func (a *Appliance) SetCapabilities(caps map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.capabilities = caps
}

// Capabilities returns a deep copy of the live capability document, or nil
// when the vendor reported none.
func (a *Appliance) Capabilities() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return catalog.CloneInfo(a.capabilities)
}

// StateSnapshot returns a deep copy of the full state document.
func (a *Appliance) StateSnapshot() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.Clone()
}

// ConnectionState returns the appliance's reported connection state.
func (a *Appliance) ConnectionState() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.ConnectionState()
}

// ReportedValue resolves an attribute path ("program",
// "userSelections/analogTemperature") against the reported state. The second
// return is false when any segment is missing or a non-aggregate blocks the
// descent.
func (a *Appliance) ReportedValue(path string) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var current any = a.state.Reported()
	for _, segment := range strings.Split(path, catalog.PathSeparator) {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// ApplyPartialUpdate writes one attribute value at the given path, creating
// intermediate aggregates as needed. Descending through an existing
// non-aggregate value fails with ErrPathConflict and leaves the state
// untouched.
func (a *Appliance) ApplyPartialUpdate(path string, value any) error {
	if path == "" {
		return ErrEmptyPath
	}

	a.mu.Lock()
	reported := a.state.ensureReported()
	segments := strings.Split(path, catalog.PathSeparator)
	target := reported
	for _, segment := range segments[:len(segments)-1] {
		child, exists := target[segment]
		if !exists {
			next := make(map[string]any)
			target[segment] = next
			target = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			a.mu.Unlock()
			a.logger.Warn("partial update blocked by scalar segment",
				"appliance_id", a.ID, "path", path, "segment", segment)
			return ErrPathConflict
		}
		target = next
	}
	target[segments[len(segments)-1]] = value
	a.mu.Unlock()

	a.notify()
	return nil
}

// ApplyFullUpdate deep-merges a bulk reported document into the current
// reported state. Constant-access values already present survive the merge
// unless the payload names them explicitly.
func (a *Appliance) ApplyFullUpdate(reported map[string]any) {
	a.mu.Lock()
	current := a.state.ensureReported()

	preserved := make(map[string]any)
	for path, desc := range a.catalog {
		if catalog.InfoAccess(desc.Capability) != catalog.AccessConstant {
			continue
		}
		if value, ok := current[path]; ok {
			preserved[path] = value
		}
	}

	deepMerge(current, reported)

	for path, value := range preserved {
		if _, targeted := reported[path]; !targeted {
			current[path] = value
		}
	}
	a.mu.Unlock()

	a.notify()
}

// ReplaceState swaps in a freshly fetched state document, then re-seeds
// constant defaults that the fetch did not include.
func (a *Appliance) ReplaceState(state State) {
	if state == nil {
		state = State{}
	}
	a.mu.Lock()
	a.state = state
	a.seedConstantsLocked()
	a.mu.Unlock()

	a.notify()
}

// InitializeConstants seeds catalog defaults for constant-access attributes
// that the vendor has not reported. Called once after discovery.
func (a *Appliance) InitializeConstants() {
	a.mu.Lock()
	a.seedConstantsLocked()
	a.mu.Unlock()
}

func (a *Appliance) seedConstantsLocked() {
	reported := a.state.Reported()
	if len(reported) == 0 {
		return
	}
	// Mirror identity metadata under the applianceInfo aggregate so
	// info-sourced attributes resolve like any reported value.
	if data, ok := a.state["applianceData"].(map[string]any); ok {
		if _, present := reported["applianceInfo"]; !present {
			reported["applianceInfo"] = catalog.CloneInfo(data)
		}
	}
	for path, desc := range a.catalog {
		if catalog.InfoAccess(desc.Capability) != catalog.AccessConstant {
			continue
		}
		def, ok := catalog.InfoDefault(desc.Capability)
		if !ok || def == nil {
			continue
		}
		if _, present := reported[path]; !present {
			reported[path] = def
			a.logger.Debug("seeded constant default",
				"appliance_id", a.ID, "path", path, "value", def)
		}
	}
}

// Bind registers observers to be notified on every state change.
func (a *Appliance) Bind(observers ...Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, observers...)
}

func (a *Appliance) notify() {
	a.mu.RLock()
	observers := make([]Observer, len(a.observers))
	copy(observers, a.observers)
	a.mu.RUnlock()

	for _, obs := range observers {
		obs.StateUpdated()
	}
}
