// Package mqtt connects the gateway to the local broker.
//
// ApplianceLink mirrors the vendor cloud onto MQTT: retained appliance
// snapshots, per-entity values and a connection topic flow out, commands
// from home-automation hosts flow back in on the command topics.
//
//	Vendor Cloud <-> ApplianceLink <-> MQTT Broker <-> Hosts
//
// State topics are retained so a host connecting later immediately sees the
// current state of every appliance. Gateway liveness is announced on the
// system status topic, with a Last Will covering crashes.
//
// The Topics type builds every topic string used by the gateway; no other
// package hardcodes topic paths.
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.AllApplianceCommands(), 1,
//	    func(topic string, payload []byte) error {
//	        return dispatch(topic, payload)
//	    })
//
//	client.PublishRetained(mqtt.Topics{}.ApplianceState("wm-1"), snapshot)
package mqtt
