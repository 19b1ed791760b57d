// Package events describes what happened at the door and fans it out to
// recorders.
//
// The controller, menu and door packages emit events through an Emitter.
// Recorders are adapters: the sqlite audit log, the MQTT publisher, the
// InfluxDB metrics writer and the structured logger. A failing recorder is
// logged and otherwise ignored, so the door keeps working with the broker
// or database down.
package events
