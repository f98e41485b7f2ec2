package sync

import (
	"context"
	"time"

	"github.com/quennell/appliancelink/internal/appliance"
	"github.com/quennell/appliancelink/internal/catalog"
)

// Attributes whose value entering (0, 1] marks a program about to finish.
// The vendor does not always push a final event when a timed cycle ends, so
// these trigger a compensating refetch.
var timeRemainingAttrs = map[string]bool{
	"timeToEnd":                 true,
	"freezer/fastModeTimeToEnd": true,
	"fridge/fastModeTimeToEnd":  true,
}

// deferredTrigger reports whether a reported value signals an imminent
// cycle end. The range is exclusive at zero: a finished cycle reports zero
// and needs no compensation.
func deferredTrigger(value any) bool {
	v, ok := catalog.AsNumber(value)
	return ok && v > 0 && v <= 1
}

// checkDeferred scans an update payload for time-remaining attributes in
// the trigger range and schedules compensation when one is found.
func (c *Coordinator) checkDeferred(applianceID string, payload map[string]any) {
	for attr, value := range payload {
		if !timeRemainingAttrs[attr] {
			continue
		}
		if deferredTrigger(value) {
			c.scheduleDeferred(applianceID)
			return
		}
	}
}

// scheduleDeferred schedules a one-shot delayed refetch for one appliance.
//
// At most one pending task exists per appliance id: a new trigger replaces
// an older pending one. Replacements bypass the global cap; only net-new
// tasks count against it, and triggers beyond the cap are dropped.
func (c *Coordinator) scheduleDeferred(applianceID string) {
	c.deferredMu.Lock()
	defer c.deferredMu.Unlock()

	if timer, pending := c.deferred[applianceID]; pending {
		timer.Stop()
		c.logger.Debug("replacing pending deferred update", "appliance_id", applianceID)
	} else if len(c.deferred) >= c.cfg.DeferredTaskLimit {
		c.logger.Debug("dropping deferred update, task limit reached",
			"appliance_id", applianceID, "limit", c.cfg.DeferredTaskLimit)
		return
	} else {
		c.logger.Debug("scheduling deferred update",
			"appliance_id", applianceID, "delay", c.cfg.DeferredDelay)
	}

	c.deferred[applianceID] = time.AfterFunc(c.cfg.DeferredDelay, func() {
		c.deferredMu.Lock()
		delete(c.deferred, applianceID)
		c.deferredMu.Unlock()
		c.deferredRefetch(applianceID)
	})
}

// deferredRefetch fetches the appliance's true end-of-cycle state.
func (c *Coordinator) deferredRefetch(applianceID string) {
	app, err := c.registry.Get(applianceID)
	if err != nil {
		c.logger.Debug("deferred update for unknown appliance", "appliance_id", applianceID)
		return
	}

	ctx, cancel := context.WithTimeout(c.runCtx, c.cfg.UpdateTimeout)
	defer cancel()

	state, err := c.api.GetApplianceState(ctx, applianceID)
	if err != nil {
		c.logger.Warn("deferred update failed",
			"appliance_id", applianceID, "error", err)
		return
	}

	app.ReplaceState(appliance.State(state))
	c.logger.Debug("deferred update applied", "appliance_id", applianceID)
	c.afterUpdate(applianceID, appliance.HistorySourceDeferred)
}

// cancelDeferred stops all pending compensation tasks.
func (c *Coordinator) cancelDeferred() {
	c.deferredMu.Lock()
	defer c.deferredMu.Unlock()
	for id, timer := range c.deferred {
		timer.Stop()
		delete(c.deferred, id)
	}
}

// pendingDeferred returns the number of pending compensation tasks.
func (c *Coordinator) pendingDeferred() int {
	c.deferredMu.Lock()
	defer c.deferredMu.Unlock()
	return len(c.deferred)
}
