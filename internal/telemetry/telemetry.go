// Package telemetry forwards container registry changes to MQTT and InfluxDB.
//
// A Publisher implements container.Notifier. Every change republishes the
// container's retained state, emits an event message and records a level
// point; deposits and withdrawals also record a transfer point. Deleting a
// container clears its retained state.
//
// Failures are logged and never reach the registry: the in-memory state is
// authoritative and telemetry is best effort.
package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mehutonkka/ohtuvarasto/internal/container"
)

// StatePublisher is the subset of the MQTT client used by the Publisher.
// Retained state goes out at the client's default QoS.
type StatePublisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	PublishRetained(topic string, payload []byte) error
	ClearRetained(topic string) error
}

// Topics names the MQTT topics the Publisher writes to.
type Topics interface {
	ContainerState(id int) string
	Event(eventType string) string
}

// MetricsWriter is the subset of the InfluxDB client used by the Publisher.
type MetricsWriter interface {
	WriteContainerLevel(id int, name string, capacity, level float64, at time.Time)
	WriteTransfer(id int, direction string, requested, applied float64, at time.Time)
}

// Logger defines the logging interface used by the Publisher.
type Logger interface {
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// State is the JSON document published on a container's state topic and
// embedded in event messages.
type State struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Capacity  float64   `json:"capacity"`
	Level     float64   `json:"level"`
	FreeSpace float64   `json:"free_space"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EventMessage is the JSON document published on an event topic.
type EventMessage struct {
	Type      container.EventType `json:"type"`
	Container State               `json:"container"`
	Transfer  *TransferMessage    `json:"transfer,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// TransferMessage describes a deposit or withdrawal inside an EventMessage.
type TransferMessage struct {
	Direction container.Direction `json:"direction"`
	Requested float64             `json:"requested"`
	Applied   float64             `json:"applied"`
	Partial   bool                `json:"partial"`
}

// Publisher fans registry events out to MQTT and InfluxDB.
// Either sink may be nil.
type Publisher struct {
	mqtt    StatePublisher
	topics  Topics
	qos     byte
	metrics MetricsWriter
	logger  Logger
}

// Options configures a Publisher.
type Options struct {
	MQTT    StatePublisher // nil disables MQTT publishing
	Topics  Topics         // required when MQTT is set
	QoS     byte           // for event messages
	Metrics MetricsWriter // nil disables metrics
	Logger  Logger
}

// NewPublisher creates a Publisher from opts.
func NewPublisher(opts Options) *Publisher {
	p := &Publisher{
		mqtt:    opts.MQTT,
		topics:  opts.Topics,
		qos:     opts.QoS,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	if p.topics == nil {
		p.mqtt = nil
	}
	if p.logger == nil {
		p.logger = noopLogger{}
	}
	return p
}

// Notify implements container.Notifier.
func (p *Publisher) Notify(_ context.Context, event container.Event) {
	at := event.At
	if at.IsZero() {
		at = time.Now()
	}
	state := stateOf(event.Entry, at)

	if p.mqtt != nil {
		p.publishMQTT(event, state, at)
	}
	if p.metrics != nil {
		p.writeMetrics(event, at)
	}
}

func (p *Publisher) publishMQTT(event container.Event, state State, at time.Time) {
	id := event.Entry.ID
	stateTopic := p.topics.ContainerState(id)

	if event.Type == container.EventDeleted {
		if err := p.mqtt.ClearRetained(stateTopic); err != nil {
			p.logger.Warn("failed to clear container state", "id", id, "topic", stateTopic, "error", err)
		}
	} else if payload, ok := p.encode(stateTopic, state); ok {
		if err := p.mqtt.PublishRetained(stateTopic, payload); err != nil {
			p.logger.Warn("failed to publish container state", "id", id, "topic", stateTopic, "error", err)
		}
	}

	msg := EventMessage{Type: event.Type, Container: state, Timestamp: at}
	if t := event.Transfer; t != nil {
		msg.Transfer = &TransferMessage{
			Direction: t.Direction,
			Requested: t.Requested,
			Applied:   t.Applied,
			Partial:   t.Partial(),
		}
	}
	eventTopic := p.topics.Event(string(event.Type))
	if payload, ok := p.encode(eventTopic, msg); ok {
		if err := p.mqtt.Publish(eventTopic, payload, p.qos, false); err != nil {
			p.logger.Warn("failed to publish to MQTT", "topic", eventTopic, "error", err)
		}
	}
}

func (p *Publisher) encode(topic string, v any) ([]byte, bool) {
	payload, err := json.Marshal(v)
	if err != nil {
		p.logger.Warn("failed to encode MQTT payload", "topic", topic, "error", err)
		return nil, false
	}
	return payload, true
}

func (p *Publisher) writeMetrics(event container.Event, at time.Time) {
	e := event.Entry
	if event.Type != container.EventDeleted {
		p.metrics.WriteContainerLevel(e.ID, e.Name, e.Container.Capacity(), e.Container.Level(), at)
	}
	if t := event.Transfer; t != nil {
		p.metrics.WriteTransfer(e.ID, string(t.Direction), t.Requested, t.Applied, at)
	}
}

func stateOf(e container.Entry, at time.Time) State {
	return State{
		ID:        e.ID,
		Name:      e.Name,
		Capacity:  e.Container.Capacity(),
		Level:     e.Container.Level(),
		FreeSpace: e.Container.FreeSpace(),
		UpdatedAt: at.UTC(),
	}
}
