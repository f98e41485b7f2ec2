// Package publisher exposes appliance state over MQTT.
//
// It implements the coordinator's change notifier: after every applied
// update it publishes the appliance's state snapshot and the mapped entity
// values as retained messages, so hosts joining late still see the current
// state. Commands travel the other way: the publisher subscribes to the
// per-appliance command topics and routes set/on/off/press actions through
// the mapped entities, which validate program support and remote control
// before anything reaches the vendor cloud.
package publisher
