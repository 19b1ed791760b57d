// Package influxdb writes door access metrics to InfluxDB.
//
// It wraps the official influxdb-client-go v2 library for connection
// management, batched writes and health monitoring.
//
// # Measurements
//
//	access_events  tags: door, kind, method   fields: count, granted
//
// UIDs and passwords are never written; the audit log keeps the detail.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	emitter := events.NewEmitter(cfg.Site.ID, clock, events.Multi{influxdb.NewRecorder(client), audit})
//
// # Error Handling
//
// Writes are non-blocking and batched. Batch errors are reported through
// the SetOnError callback. Connection and health check errors are returned
// directly.
package influxdb
