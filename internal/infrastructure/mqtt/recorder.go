package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-access/internal/events"
)

// Sender is the part of Client the Publisher needs.
type Sender interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// eventPayload is the JSON body published for each event.
type eventPayload struct {
	Kind      events.Kind   `json:"kind"`
	Method    events.Method `json:"method,omitempty"`
	Door      string        `json:"door"`
	Detail    string        `json:"detail,omitempty"`
	Timestamp string        `json:"timestamp"`
}

// doorPayload is the retained body on the door topic.
type doorPayload struct {
	State     string `json:"state"`
	Timestamp string `json:"timestamp"`
}

// Publisher forwards access events to MQTT. It implements events.Recorder.
type Publisher struct {
	sender Sender
	topics Topics
	qos    byte
}

// NewPublisher creates a publisher for the given site.
func NewPublisher(sender Sender, site string, qos byte) *Publisher {
	return &Publisher{
		sender: sender,
		topics: Topics{Site: site},
		qos:    qos,
	}
}

// Record publishes e on its event topic. Door state events are also
// published, retained, on the door topic.
func (p *Publisher) Record(ctx context.Context, e events.Event) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mqtt publish event: %w", err)
	}

	payload, err := json.Marshal(eventPayload{
		Kind:      e.Kind,
		Method:    e.Method,
		Door:      e.Door,
		Detail:    e.Detail,
		Timestamp: e.At.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	if err := p.sender.Publish(p.topics.Event(e.Kind), payload, p.qos, false); err != nil {
		return fmt.Errorf("publishing %s event: %w", e.Kind, err)
	}

	if e.Kind != events.KindDoorState {
		return nil
	}

	state, err := json.Marshal(doorPayload{
		State:     e.Detail,
		Timestamp: e.At.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshalling door state: %w", err)
	}
	if err := p.sender.Publish(p.topics.Door(), state, p.qos, true); err != nil {
		return fmt.Errorf("publishing door state: %w", err)
	}
	return nil
}
