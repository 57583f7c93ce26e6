// Package shared holds building blocks common to all domain packages
package shared

import "time"

// DomainEvent represents something that happened in the domain
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// EventHandler handles domain events
type EventHandler func(event DomainEvent) error

// EventDispatcher dispatches domain events to registered handlers
type EventDispatcher interface {
	Dispatch(event DomainEvent) error
	Register(eventName string, handler EventHandler)
}

// BaseEvent carries the fields every concrete event shares
type BaseEvent struct {
	Name string
	At   time.Time
}

// EventName returns the event name
func (e BaseEvent) EventName() string { return e.Name }

// OccurredAt returns when the event happened
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// NewBaseEvent creates a base event stamped with the current time
func NewBaseEvent(name string) BaseEvent {
	return BaseEvent{Name: name, At: time.Now()}
}

// AggregateRoot is embedded by aggregate roots to collect pending events
type AggregateRoot struct {
	events []DomainEvent
}

// AddEvent records a domain event for later dispatch
func (a *AggregateRoot) AddEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// Events returns and clears the pending events
func (a *AggregateRoot) Events() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}
