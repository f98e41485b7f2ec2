package appliance

import "sync"

// Registry is the thread-safe collection of known appliances keyed by ID.
//
// The synchronization coordinator owns the registry: discovery populates it,
// reconciliation removes appliances the vendor no longer lists.
type Registry struct {
	mu         sync.RWMutex
	appliances map[string]*Appliance
	logger     Logger
}

// NewRegistry creates an empty appliance registry.
func NewRegistry() *Registry {
	return &Registry{
		appliances: make(map[string]*Appliance),
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Add registers an appliance. Fails with ErrExists when the ID is taken.
func (r *Registry) Add(app *Appliance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.appliances[app.ID]; exists {
		return ErrExists
	}
	r.appliances[app.ID] = app
	r.logger.Info("appliance registered",
		"appliance_id", app.ID, "name", app.Name, "model", app.Model)
	return nil
}

// Remove deletes an appliance by ID. Fails with ErrNotFound when absent.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.appliances[id]; !exists {
		return ErrNotFound
	}
	delete(r.appliances, id)
	r.logger.Info("appliance removed", "appliance_id", id)
	return nil
}

// Get returns the appliance with the given ID.
func (r *Registry) Get(id string) (*Appliance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.appliances[id]
	if !ok {
		return nil, ErrNotFound
	}
	return app, nil
}

// IDs returns the IDs of all registered appliances.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.appliances))
	for id := range r.appliances {
		ids = append(ids, id)
	}
	return ids
}

// All returns all registered appliances.
func (r *Registry) All() []*Appliance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := make([]*Appliance, 0, len(r.appliances))
	for _, app := range r.appliances {
		apps = append(apps, app)
	}
	return apps
}

// Count returns the number of registered appliances.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.appliances)
}
