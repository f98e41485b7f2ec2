package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/quennell/appliancelink/internal/appliance"
	"github.com/quennell/appliancelink/internal/catalog"
	"github.com/quennell/appliancelink/internal/entity"
	"github.com/quennell/appliancelink/internal/infrastructure/mqtt"
)

// defaultCommandTimeout bounds a single inbound command round-trip to the
// vendor cloud.
const defaultCommandTimeout = 10 * time.Second

// defaultSettleDelay is how long after a temperature write the confirming
// refetch runs. Setpoints echo back before the appliance accepts them.
const defaultSettleDelay = 10 * time.Second

// Command actions accepted on the per-appliance command topic.
const (
	ActionSet   = "set"
	ActionOn    = "on"
	ActionOff   = "off"
	ActionPress = "press"
)

// Broker is the subset of the MQTT client the publisher uses.
type Broker interface {
	PublishRetained(topic string, payload []byte) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// EntitySource resolves the mapped entities for an appliance and refetches
// its state after a successful command. Satisfied by the sync coordinator.
type EntitySource interface {
	Entities(applianceID string) []*entity.Entity
	RefreshAppliance(ctx context.Context, applianceID, source string) error
}

// Publisher bridges the coordinator to the MQTT broker.
//
// Outbound, it implements the coordinator's Notifier: every applied update
// publishes the full state snapshot, the connection state and the individual
// entity values as retained messages. Inbound, it subscribes to the
// per-appliance command topics and routes actions through the mapped
// entities.
type Publisher struct {
	broker      Broker
	registry    *appliance.Registry
	entities    EntitySource
	exec        entity.CommandExecutor
	topics      mqtt.Topics
	qos         byte
	timeout     time.Duration
	settleDelay time.Duration
	logger      Logger
}

// NewPublisher creates a publisher over the given broker.
//
// Parameters:
//   - broker: Connected MQTT client
//   - registry: Appliance registry for snapshot lookups
//   - entities: Entity source (the sync coordinator)
//   - exec: Command executor for inbound actions (the vendor API client)
func NewPublisher(broker Broker, registry *appliance.Registry, entities EntitySource, exec entity.CommandExecutor) *Publisher {
	return &Publisher{
		broker:      broker,
		registry:    registry,
		entities:    entities,
		exec:        exec,
		qos:         1,
		timeout:     defaultCommandTimeout,
		settleDelay: defaultSettleDelay,
		logger:      noopLogger{},
	}
}

// SetLogger sets the logger for the publisher.
func (p *Publisher) SetLogger(logger Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Start subscribes to the appliance command topics. Call after the broker is
// connected and before the coordinator starts delivering events.
func (p *Publisher) Start() error {
	if err := p.broker.Subscribe(p.topics.AllApplianceCommands(), p.qos, p.handleCommand); err != nil {
		return fmt.Errorf("subscribing to command topics: %w", err)
	}
	return nil
}

// =============================================================================
// Outbound: coordinator notifications
// =============================================================================

// connectionPayload is published to the per-appliance connection topic.
type connectionPayload struct {
	State     string `json:"state"`
	Connected bool   `json:"connected"`
}

// entityPayload is published to the per-entity state topic.
type entityPayload struct {
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Value    any    `json:"value"`
	Unit     string `json:"unit,omitempty"`
}

// appliancesPayload is published to the appliance list topic.
type appliancesPayload struct {
	Appliances []string `json:"appliances"`
}

// StateChanged publishes the appliance's current state snapshot, connection
// state and entity values as retained messages.
func (p *Publisher) StateChanged(applianceID string) {
	app, err := p.registry.Get(applianceID)
	if err != nil {
		p.logger.Warn("state change for unknown appliance", "appliance_id", applianceID)
		return
	}

	snapshot := app.StateSnapshot()
	p.publishJSON(p.topics.ApplianceState(applianceID), map[string]any(snapshot))

	cs := snapshot.ConnectionState()
	p.publishJSON(p.topics.ApplianceConnection(applianceID), connectionPayload{
		State:     cs,
		Connected: strings.EqualFold(cs, "connected"),
	})

	for _, e := range p.entities.Entities(applianceID) {
		value, ok := p.entityValue(e)
		if !ok {
			continue
		}
		p.publishJSON(p.topics.EntityState(applianceID, e.UniqueID()), entityPayload{
			EntityID: e.UniqueID(),
			Name:     e.Name,
			Kind:     string(e.Kind),
			Value:    value,
			Unit:     p.entityUnit(e),
		})
	}
}

// AppliancesChanged publishes the current appliance ID list.
func (p *Publisher) AppliancesChanged() {
	p.publishJSON(p.topics.Appliances(), appliancesPayload{
		Appliances: p.registry.IDs(),
	})
}

// entityValue extracts the host-facing value for an entity. Buttons are
// stateless and report no value.
func (p *Publisher) entityValue(e *entity.Entity) (any, bool) {
	switch e.Kind {
	case catalog.PlatformNumber:
		n, err := e.AsNumber()
		if err != nil {
			return nil, false
		}
		return firstOK(n.Value())
	case catalog.PlatformSwitch:
		s, err := e.AsSwitch()
		if err != nil {
			return nil, false
		}
		return s.IsOn(), true
	case catalog.PlatformBinarySensor:
		s, err := e.AsBinarySensor()
		if err != nil {
			return nil, false
		}
		return s.IsOn(), true
	case catalog.PlatformButton:
		return nil, false
	default:
		return e.RawValue()
	}
}

func (p *Publisher) entityUnit(e *entity.Entity) string {
	if e.Kind != catalog.PlatformNumber {
		return ""
	}
	n, err := e.AsNumber()
	if err != nil {
		return ""
	}
	return string(n.DisplayUnit())
}

func firstOK(v float64, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return v, true
}

func (p *Publisher) publishJSON(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("marshaling publish payload", "topic", topic, "error", err)
		return
	}
	if err := p.broker.PublishRetained(topic, data); err != nil {
		p.logger.Warn("publish failed", "topic", topic, "error", err)
	}
}

// =============================================================================
// Inbound: appliance commands
// =============================================================================

// commandMessage is the payload accepted on the per-appliance command topic.
//
// Examples:
//
//	{"entity": "wm-1-startTime", "action": "set", "value": 60}
//	{"entity": "cr-1-executeVacationMode", "action": "press"}
type commandMessage struct {
	Entity string   `json:"entity"`
	Action string   `json:"action"`
	Value  *float64 `json:"value,omitempty"`
}

// handleCommand routes one inbound command message to the matching entity.
// Topic shape: appliancelink/appliance/{applianceID}/command.
func (p *Publisher) handleCommand(topic string, payload []byte) error {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[3] != "command" {
		return fmt.Errorf("%w: %s", ErrInvalidCommandTopic, topic)
	}
	applianceID := parts[2]

	var msg commandMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	if msg.Entity == "" {
		return fmt.Errorf("%w: missing entity", ErrInvalidCommand)
	}

	target := p.findEntity(applianceID, msg.Entity)
	if target == nil {
		return fmt.Errorf("%w: %s on %s", ErrUnknownEntity, msg.Entity, applianceID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.dispatch(ctx, target, msg); err != nil {
		p.logger.Warn("command failed",
			"appliance_id", applianceID,
			"entity", msg.Entity,
			"action", msg.Action,
			"error", err)
		return err
	}

	p.logger.Info("command executed",
		"appliance_id", applianceID,
		"entity", msg.Entity,
		"action", msg.Action)

	// The vendor stream rarely echoes command effects back promptly, so
	// refetch the appliance now.
	if err := p.entities.RefreshAppliance(ctx, applianceID, appliance.HistorySourceCommand); err != nil {
		p.logger.Warn("post-command refresh failed",
			"appliance_id", applianceID, "error", err)
	}

	// Temperature setpoints echo back before the appliance accepts them.
	// Fetch once more after a settle delay so the confirmed value wins.
	if msg.Action == ActionSet && strings.Contains(strings.ToLower(target.Attr), "temperature") {
		time.AfterFunc(p.settleDelay, func() {
			sctx, scancel := context.WithTimeout(context.Background(), p.timeout)
			defer scancel()
			if err := p.entities.RefreshAppliance(sctx, applianceID, appliance.HistorySourceCommand); err != nil {
				p.logger.Warn("settle refresh failed",
					"appliance_id", applianceID, "error", err)
			}
		})
	}
	return nil
}

func (p *Publisher) findEntity(applianceID, uniqueID string) *entity.Entity {
	for _, e := range p.entities.Entities(applianceID) {
		if e.UniqueID() == uniqueID {
			return e
		}
	}
	return nil
}

func (p *Publisher) dispatch(ctx context.Context, target *entity.Entity, msg commandMessage) error {
	switch msg.Action {
	case ActionSet:
		if msg.Value == nil {
			return fmt.Errorf("%w: set requires a value", ErrInvalidCommand)
		}
		n, err := target.AsNumber()
		if err != nil {
			return err
		}
		return n.SetValue(ctx, p.exec, *msg.Value)
	case ActionOn:
		s, err := target.AsSwitch()
		if err != nil {
			return err
		}
		return s.TurnOn(ctx, p.exec)
	case ActionOff:
		s, err := target.AsSwitch()
		if err != nil {
			return err
		}
		return s.TurnOff(ctx, p.exec)
	case ActionPress:
		b, err := target.AsButton()
		if err != nil {
			return err
		}
		return b.Press(ctx, p.exec)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCommand, msg.Action)
	}
}
