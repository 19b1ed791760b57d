package influxdb

import (
	"context"
	"fmt"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/gray-logic-access/internal/events"
)

// MeasurementAccess is the measurement access events are written to.
const MeasurementAccess = "access_events"

// PointWriter queues points for writing. Client implements it.
type PointWriter interface {
	WritePoint(p *write.Point)
}

// Recorder turns access events into metric points. It implements events.Recorder.
type Recorder struct {
	writer PointWriter
}

// NewRecorder creates a recorder writing through w.
func NewRecorder(w PointWriter) *Recorder {
	return &Recorder{writer: w}
}

// Record queues one point for e. It never blocks on the network.
func (r *Recorder) Record(ctx context.Context, e events.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("influxdb record event: %w", err)
	}
	r.writer.WritePoint(EventPoint(e))
	return nil
}

// EventPoint builds the access_events point for e.
func EventPoint(e events.Event) *write.Point {
	tags := map[string]string{
		"door": e.Door,
		"kind": string(e.Kind),
	}
	if e.Method != events.MethodNone {
		tags["method"] = string(e.Method)
	}

	fields := map[string]interface{}{
		"count": 1,
	}
	switch e.Kind {
	case events.KindAccessGranted:
		fields["granted"] = true
	case events.KindAccessDenied:
		fields["granted"] = false
	case events.KindDoorState:
		fields["open"] = e.Detail == "open"
	}

	return write.NewPoint(MeasurementAccess, tags, fields, e.At)
}
