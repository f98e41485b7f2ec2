package mqtt

import "fmt"

// Topic prefixes for the ApplianceLink MQTT surface.
//
// All topics use the flat scheme: appliancelink/{category}/{id}/{suffix}
const (
	// TopicPrefix is the base for all ApplianceLink topics.
	TopicPrefix = "appliancelink"

	// TopicPrefixAppliance is the base for per-appliance topics.
	TopicPrefixAppliance = "appliancelink/appliance"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "appliancelink/system"
)

// Topics provides builders for ApplianceLink MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.ApplianceState("wm-1")
//	// Returns: "appliancelink/appliance/wm-1/state"
type Topics struct{}

// ApplianceState returns the topic for one appliance's state snapshots.
//
// Example: appliancelink/appliance/wm-1/state
func (Topics) ApplianceState(applianceID string) string {
	return fmt.Sprintf("%s/%s/state", TopicPrefixAppliance, applianceID)
}

// ApplianceConnection returns the topic for one appliance's connection state.
//
// Example: appliancelink/appliance/wm-1/connection
func (Topics) ApplianceConnection(applianceID string) string {
	return fmt.Sprintf("%s/%s/connection", TopicPrefixAppliance, applianceID)
}

// EntityState returns the topic for one mapped entity's value.
//
// Example: appliancelink/appliance/wm-1/entity/wm-1_number_timetoend/state
func (Topics) EntityState(applianceID, entityID string) string {
	return fmt.Sprintf("%s/%s/entity/%s/state", TopicPrefixAppliance, applianceID, entityID)
}

// ApplianceCommand returns the topic commands for one appliance arrive on.
//
// Example: appliancelink/appliance/wm-1/command
func (Topics) ApplianceCommand(applianceID string) string {
	return fmt.Sprintf("%s/%s/command", TopicPrefixAppliance, applianceID)
}

// Appliances returns the topic announcing changes to the tracked set.
//
// Example: appliancelink/appliances
func (Topics) Appliances() string {
	return fmt.Sprintf("%s/appliances", TopicPrefix)
}

// SystemStatus returns the system status topic.
//
// Example: appliancelink/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllApplianceStates returns a pattern matching all appliance state topics.
//
// Pattern: appliancelink/appliance/+/state
func (Topics) AllApplianceStates() string {
	return fmt.Sprintf("%s/+/state", TopicPrefixAppliance)
}

// AllApplianceCommands returns a pattern matching all command topics.
//
// Pattern: appliancelink/appliance/+/command
func (Topics) AllApplianceCommands() string {
	return fmt.Sprintf("%s/+/command", TopicPrefixAppliance)
}

// AllTopics returns a pattern matching all ApplianceLink topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: appliancelink/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}
