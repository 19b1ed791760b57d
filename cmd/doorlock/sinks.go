package main

import (
	"context"
	"fmt"

	"github.com/nerrad567/gray-logic-access/internal/audit"
	"github.com/nerrad567/gray-logic-access/internal/events"
	"github.com/nerrad567/gray-logic-access/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-access/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-access/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-access/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-access/internal/infrastructure/mqtt"
)

// openSinks opens every enabled event sink and returns them as one recorder.
//
// The audit database is required when enabled: a door that cannot keep its
// log refuses to start. MQTT and InfluxDB are best effort; the door keeps
// working when the network does not.
//
// The returned close function releases sinks in reverse order.
func openSinks(ctx context.Context, cfg *config.Config, log *logging.Logger) (events.Recorder, func(), error) {
	recorders := events.Multi{events.NewLogRecorder(log.With("component", "events"))}
	var closers []func()

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Database.Enabled {
		db, err := database.Open(ctx, database.Config{
			Path:        cfg.Database.Path,
			WALMode:     cfg.Database.WALMode,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
		if err != nil {
			return nil, func() {}, fmt.Errorf("opening database: %w", err)
		}
		closers = append(closers, func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		})
		log.Info("database connected", "path", db.Path())

		if err := db.Migrate(ctx); err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("running migrations: %w", err)
		}
		if err := db.HealthCheck(ctx); err != nil {
			closeAll()
			return nil, func() {}, err
		}
		log.Info("database migrations complete")

		recorders = append(recorders, audit.NewRecorder(audit.NewSQLiteRepository(db.DB)))
	} else {
		log.Info("audit log disabled")
	}

	if cfg.MQTT.Enabled {
		client, err := mqtt.Connect(cfg.MQTT, cfg.Site.ID)
		if err != nil {
			log.Warn("MQTT unavailable, events will not be published", "error", err)
		} else {
			client.SetLogger(log.With("component", "mqtt"))
			client.SetOnConnect(func() {
				log.Info("MQTT session established")
			})
			client.SetOnDisconnect(func(err error) {
				log.Warn("MQTT disconnected", "error", err)
			})
			if err := client.HealthCheck(ctx); err != nil {
				log.Warn("MQTT health check failed", "error", err)
			}
			closers = append(closers, func() {
				log.Info("disconnecting from MQTT")
				if closeErr := client.Close(); closeErr != nil {
					log.Error("error closing MQTT", "error", closeErr)
				}
			})
			log.Info("MQTT connected",
				"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
				"client_id", cfg.MQTT.Broker.ClientID,
			)
			recorders = append(recorders, mqtt.NewPublisher(client, cfg.Site.ID, byte(cfg.MQTT.QoS)))
		}
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		client, err := influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			log.Warn("InfluxDB unavailable, metrics will not be written", "error", err)
		} else {
			client.SetOnError(func(err error) {
				log.Error("InfluxDB write error", "error", err)
			})
			if err := client.HealthCheck(ctx); err != nil {
				log.Warn("InfluxDB health check failed", "error", err)
			}
			closers = append(closers, func() {
				log.Info("closing InfluxDB connection")
				if closeErr := client.Close(); closeErr != nil {
					log.Error("error closing InfluxDB", "error", closeErr)
				}
			})
			log.Info("InfluxDB connected",
				"url", cfg.InfluxDB.URL,
				"org", cfg.InfluxDB.Org,
				"bucket", cfg.InfluxDB.Bucket,
			)
			recorders = append(recorders, influxdb.NewRecorder(client))
		}
	} else {
		log.Info("InfluxDB disabled")
	}

	return recorders, closeAll, nil
}
