package container

import (
	"context"
	"time"
)

// EventType names a registry change.
type EventType string

// Event types, also used as MQTT topic suffixes.
const (
	EventCreated   EventType = "created"
	EventUpdated   EventType = "updated"
	EventDeposited EventType = "deposited"
	EventWithdrawn EventType = "withdrawn"
	EventDeleted   EventType = "deleted"
)

// Event describes one change to a registry entry. Entry holds the state after
// the change (the last known state for EventDeleted).
type Event struct {
	Type     EventType
	Entry    Entry
	Transfer *Transfer // set for EventDeposited and EventWithdrawn
	At       time.Time
}

// Notifier receives registry changes. Notify is called with the entry lock
// held, so events for one entry arrive in order; implementations must not
// call back into the Registry and should return quickly.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, event Event)

// Notify calls f(ctx, event).
func (f NotifierFunc) Notify(ctx context.Context, event Event) { f(ctx, event) }

// Notifiers fans an event out to several notifiers in order.
type Notifiers []Notifier

// Notify implements Notifier.
func (ns Notifiers) Notify(ctx context.Context, event Event) {
	for _, n := range ns {
		n.Notify(ctx, event)
	}
}
