package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quennell/appliancelink/internal/appliance"
	"github.com/quennell/appliancelink/internal/cloud"
	"github.com/quennell/appliancelink/internal/entity"
)

// Coordinator drives synchronization between the vendor cloud and the
// appliance registry.
//
// Lifecycle: Login (auth probe), SetupAppliances (discovery), Start (stream
// plus renewal loop), RefreshAll (polling fallback, host-scheduled), Close.
type Coordinator struct {
	api      cloud.APIClient
	stream   cloud.StreamClient
	registry *appliance.Registry
	cfg      Config

	notifier Notifier
	sinks    []StateSink
	logger   Logger

	runCtx context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	entitiesMu sync.RWMutex
	entities   map[string][]*entity.Entity

	deferredMu sync.Mutex
	deferred   map[string]*time.Timer

	reconcileMu   sync.Mutex
	lastReconcile time.Time
}

// NewCoordinator creates a coordinator. The registry is owned by the
// coordinator: discovery populates it, reconciliation prunes it.
func NewCoordinator(api cloud.APIClient, stream cloud.StreamClient, registry *appliance.Registry, cfg Config) *Coordinator {
	return &Coordinator{
		api:      api,
		stream:   stream,
		registry: registry,
		cfg:      cfg,
		notifier: NoopNotifier{},
		logger:   noopLogger{},
		runCtx:   context.Background(),
		cancel:   func() {},
		entities: make(map[string][]*entity.Entity),
		deferred: make(map[string]*time.Timer),
	}
}

// SetLogger sets the logger for the coordinator.
func (c *Coordinator) SetLogger(logger Logger) {
	c.logger = logger
}

// SetNotifier sets the host change notifier.
func (c *Coordinator) SetNotifier(notifier Notifier) {
	c.notifier = notifier
}

// AddSink registers a state sink. Sinks receive a snapshot after every
// applied update; sink failures are logged, never propagated.
func (c *Coordinator) AddSink(sink StateSink) {
	c.sinks = append(c.sinks, sink)
}

// Login probes the vendor with a listing call. Authorization failures are
// fatal and surface as ErrAuthenticationFailed for the host to re-prompt
// credentials; anything else is ErrNotReady and may be retried.
func (c *Coordinator) Login(ctx context.Context) error {
	if _, err := c.api.ListAppliances(ctx); err != nil {
		if cloud.IsAuthError(err) {
			return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
		}
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	return nil
}

// SetupAppliances discovers the account's appliances and populates the
// registry. Each appliance's fetches run independently; one appliance's
// failure never blocks the others. The whole pass is bounded by the setup
// budget, and appliances still pending at expiry are abandoned for this
// pass.
func (c *Coordinator) SetupAppliances(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.SetupTimeout)
	defer cancel()

	summaries, err := c.api.ListAppliances(ctx)
	if err != nil {
		if cloud.IsAuthError(err) {
			return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
		}
		return fmt.Errorf("listing appliances: %w", err)
	}

	var wg sync.WaitGroup
	for _, summary := range summaries {
		wg.Add(1)
		go func(summary cloud.ApplianceSummary) {
			defer wg.Done()
			c.setupAppliance(ctx, summary)
		}(summary)
	}
	wg.Wait()

	c.reconcileMu.Lock()
	c.lastReconcile = time.Now()
	c.reconcileMu.Unlock()

	c.logger.Info("appliance discovery finished",
		"listed", len(summaries), "registered", c.registry.Count())
	c.notifier.AppliancesChanged()
	return nil
}

// setupAppliance fetches one appliance's info, state and capabilities, and
// registers it. Info and state are required; a capability failure leaves
// the appliance functional without program-dependent constraints.
func (c *Coordinator) setupAppliance(ctx context.Context, summary cloud.ApplianceSummary) {
	var (
		info  *cloud.ApplianceInfo
		state map[string]any
		caps  map[string]any
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, c.cfg.FetchTimeout)
		defer cancel()
		var err error
		info, err = c.api.GetApplianceInfo(fctx, summary.ID)
		return err
	})
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, c.cfg.FetchTimeout)
		defer cancel()
		var err error
		state, err = c.api.GetApplianceState(fctx, summary.ID)
		return err
	})
	g.Go(func() error {
		fctx, cancel := context.WithTimeout(gctx, c.cfg.FetchTimeout)
		defer cancel()
		fetched, err := c.api.GetApplianceCapabilities(fctx, summary.ID)
		if err != nil {
			c.logger.Warn("capability fetch failed, continuing without",
				"appliance_id", summary.ID, "error", err)
			return nil
		}
		caps = fetched
		return nil
	})
	if err := g.Wait(); err != nil {
		c.logger.Error("appliance setup failed",
			"appliance_id", summary.ID, "error", err)
		return
	}

	app := appliance.New(summary.ID, summary.Name, info.Brand, info.Model, appliance.State(state))
	app.SetLogger(c.logger)
	app.SetCapabilities(caps)
	app.InitializeConstants()

	entities := entity.Build(app, c.logger)
	for _, e := range entities {
		app.Bind(e)
	}

	if err := c.registry.Add(app); err != nil {
		c.logger.Warn("could not register appliance",
			"appliance_id", summary.ID, "error", err)
		return
	}

	c.entitiesMu.Lock()
	c.entities[summary.ID] = entities
	c.entitiesMu.Unlock()

	c.logger.Debug("appliance ready",
		"appliance_id", summary.ID, "model", info.Model, "entities", len(entities))
}

// Entities returns the mapped entities for one appliance.
func (c *Coordinator) Entities(applianceID string) []*entity.Entity {
	c.entitiesMu.RLock()
	defer c.entitiesMu.RUnlock()
	return c.entities[applianceID]
}

// HandleEvent routes one stream event into the state store. Malformed
// updates are logged and dropped; the appliance state stays unchanged.
func (c *Coordinator) HandleEvent(event cloud.Event) {
	app, err := c.registry.Get(event.ApplianceID)
	if err != nil {
		c.logger.Warn("event for unknown appliance, ignoring",
			"appliance_id", event.ApplianceID)
		return
	}

	if event.Incremental() {
		if err := app.ApplyPartialUpdate(event.Property, event.Value); err != nil {
			c.logger.Error("dropping invalid incremental update",
				"appliance_id", event.ApplianceID, "property", event.Property, "error", err)
			return
		}
		c.checkDeferred(event.ApplianceID, map[string]any{event.Property: event.Value})
	} else {
		app.ApplyFullUpdate(event.Data)
		c.checkDeferred(event.ApplianceID, event.Data)
	}

	c.afterUpdate(event.ApplianceID, appliance.HistorySourceStream)
}

// afterUpdate fans an applied update out to the host and the state sinks.
func (c *Coordinator) afterUpdate(applianceID, source string) {
	c.notifier.StateChanged(applianceID)

	if len(c.sinks) == 0 {
		return
	}
	app, err := c.registry.Get(applianceID)
	if err != nil {
		return
	}
	snapshot := app.StateSnapshot()
	for _, sink := range c.sinks {
		ctx, cancel := context.WithTimeout(c.runCtx, c.cfg.UpdateTimeout)
		if err := sink.RecordState(ctx, applianceID, snapshot, source); err != nil {
			c.logger.Warn("state sink write failed",
				"appliance_id", applianceID, "error", err)
		}
		cancel()
	}
}

// RefreshAppliance refetches one appliance's state, attributing the update
// to the given history source. Used for the post-command refetch, so a host
// sees the effect of its command without waiting for the next poll.
func (c *Coordinator) RefreshAppliance(ctx context.Context, applianceID, source string) error {
	app, err := c.registry.Get(applianceID)
	if err != nil {
		return err
	}

	fctx, cancel := context.WithTimeout(ctx, c.cfg.UpdateTimeout)
	defer cancel()

	state, err := c.api.GetApplianceState(fctx, applianceID)
	if err != nil {
		if cloud.IsAuthError(err) {
			return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
		}
		return fmt.Errorf("refreshing appliance %s: %w", applianceID, err)
	}

	app.ReplaceState(appliance.State(state))
	c.checkDeferred(applianceID, app.StateSnapshot().Reported())
	c.afterUpdate(applianceID, source)
	return nil
}

// RefreshAll refetches every tracked appliance's state, the polling
// fallback to the stream.
//
// Per-appliance failures are isolated: a pass with any success is
// successful with failures logged, a pass where every appliance failed
// returns ErrAllUpdatesFailed, and authentication failures abort the pass
// immediately.
func (c *Coordinator) RefreshAll(ctx context.Context) error {
	apps := c.registry.All()
	if len(apps) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		var mu sync.Mutex
		failures := 0

		for _, app := range apps {
			g.Go(func() error {
				fctx, cancel := context.WithTimeout(gctx, c.cfg.UpdateTimeout)
				defer cancel()

				state, err := c.api.GetApplianceState(fctx, app.ID)
				if err != nil {
					if cloud.IsAuthError(err) {
						return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
					}
					c.logger.Warn("appliance refresh failed",
						"appliance_id", app.ID, "error", err)
					mu.Lock()
					failures++
					mu.Unlock()
					return nil
				}

				app.ReplaceState(appliance.State(state))
				c.checkDeferred(app.ID, app.StateSnapshot().Reported())
				c.afterUpdate(app.ID, appliance.HistorySourcePoll)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if failures == len(apps) {
			return fmt.Errorf("%w: %d appliances", ErrAllUpdatesFailed, failures)
		}
		if failures > 0 {
			c.logger.Warn("partial refresh", "failed", failures, "total", len(apps))
		}
	}

	return c.maybeReconcile(ctx)
}

// maybeReconcile reconciles the tracked set when the interval has elapsed.
func (c *Coordinator) maybeReconcile(ctx context.Context) error {
	c.reconcileMu.Lock()
	due := time.Since(c.lastReconcile) >= c.cfg.ReconcileInterval
	c.reconcileMu.Unlock()
	if !due {
		return nil
	}
	return c.Reconcile(ctx)
}

// Reconcile refetches the account's appliance listing and removes tracked
// appliances the account no longer lists.
func (c *Coordinator) Reconcile(ctx context.Context) error {
	summaries, err := c.api.ListAppliances(ctx)
	if err != nil {
		if cloud.IsAuthError(err) {
			return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
		}
		return fmt.Errorf("listing appliances for reconciliation: %w", err)
	}

	listed := make(map[string]bool, len(summaries))
	for _, summary := range summaries {
		listed[summary.ID] = true
	}

	removed := 0
	for _, id := range c.registry.IDs() {
		if listed[id] {
			continue
		}
		if err := c.registry.Remove(id); err == nil {
			c.entitiesMu.Lock()
			delete(c.entities, id)
			c.entitiesMu.Unlock()
			c.logger.Info("appliance no longer listed, removed", "appliance_id", id)
			removed++
		}
	}

	c.reconcileMu.Lock()
	c.lastReconcile = time.Now()
	c.reconcileMu.Unlock()

	if removed > 0 {
		c.notifier.AppliancesChanged()
	}
	return nil
}

// Start subscribes the current appliance set to the push stream and starts
// the renewal loop.
func (c *Coordinator) Start(ctx context.Context) error {
	c.runCtx, c.cancel = context.WithCancel(ctx)

	if err := c.stream.Subscribe(c.runCtx, c.registry.IDs(), c.HandleEvent); err != nil {
		return fmt.Errorf("subscribing to stream: %w", err)
	}

	c.wg.Add(1)
	go c.renewalLoop()
	return nil
}

// renewalLoop periodically tears down and re-establishes the push
// subscription. Renewal failures are retried on the next interval; too
// many consecutive failures trigger an extended backoff. Never fatal.
func (c *Coordinator) renewalLoop() {
	defer c.wg.Done()

	failures := 0
	timer := time.NewTimer(c.cfg.RenewInterval)
	defer timer.Stop()

	for {
		select {
		case <-c.runCtx.Done():
			return
		case <-timer.C:
		}

		if err := c.renewStream(); err != nil {
			failures++
			c.logger.Error("stream renewal failed",
				"error", err, "consecutive_failures", failures)
			if failures >= c.cfg.MaxRenewalFailures {
				c.logger.Warn("too many renewal failures, backing off",
					"backoff", c.cfg.RenewalBackoff)
				failures = 0
				timer.Reset(c.cfg.RenewalBackoff)
				continue
			}
		} else {
			failures = 0
			c.logger.Debug("stream renewed")
		}
		timer.Reset(c.cfg.RenewInterval)
	}
}

func (c *Coordinator) renewStream() error {
	dctx, cancel := context.WithTimeout(c.runCtx, c.cfg.DisconnectTimeout)
	if err := c.stream.Disconnect(dctx); err != nil {
		c.logger.Warn("stream disconnect during renewal", "error", err)
	}
	cancel()

	sctx, cancel := context.WithTimeout(c.runCtx, c.cfg.UpdateTimeout)
	defer cancel()
	return c.stream.Subscribe(sctx, c.registry.IDs(), c.HandleEvent)
}

// Close cancels background tasks, waits for them within the shutdown
// budget, then releases the stream and API client. A wait timeout is
// logged, not fatal.
func (c *Coordinator) Close() error {
	c.cancel()
	c.cancelDeferred()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(c.cfg.ShutdownTimeout):
		c.logger.Warn("timeout waiting for background tasks")
	}

	if err := c.stream.Close(); err != nil {
		c.logger.Warn("closing stream", "error", err)
	}
	return c.api.Close()
}
