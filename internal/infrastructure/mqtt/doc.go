// Package mqtt publishes door access events to an MQTT broker.
//
// The controller is a publisher only. It never subscribes and never accepts
// commands over MQTT, so a compromised broker cannot open the door.
//
// # Topics
//
//	graylogic/access/{site}/event/{kind}   access events (not retained)
//	graylogic/access/{site}/door           current door state (retained)
//	graylogic/access/{site}/status         online/offline, also the LWT
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT, cfg.Site.ID)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	pub := mqtt.NewPublisher(client, cfg.Site.ID, byte(cfg.MQTT.QoS))
//	emitter := events.NewEmitter(cfg.Site.ID, clock, events.Multi{pub, auditRecorder})
//
// # Security Considerations
//
//   - TLS should be enabled whenever the broker is not on localhost
//   - Event payloads carry RFID UIDs; restrict subscriptions with broker ACLs
//   - Passwords are never published
package mqtt
