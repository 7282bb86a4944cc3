package shared

import (
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN EVENTS
// Transitions return intents; side effects (notify, cache invalidation) are
// driven by events published after the transaction commits.
// ══════════════════════════════════════════════════════════════════════════════

// EventType identifies the type of a domain event.
type EventType string

const (
	EventApplicationSubmitted EventType = "application.submitted"
	EventApplicationReviewed  EventType = "application.reviewed"
	EventApplicationArchived  EventType = "application.archived"

	EventCandidateAdded    EventType = "candidate.added"
	EventCandidateUpdated  EventType = "candidate.updated"
	EventCandidateReviewed EventType = "candidate.reviewed"
	EventCandidateArrived  EventType = "candidate.arrived"
	EventCandidateRemoved  EventType = "candidate.removed"

	EventInternPromoted          EventType = "intern.promoted"
	EventInternAccountCreated    EventType = "intern.account_created"
	EventInternAssigned          EventType = "intern.assigned"
	EventInternProfileUpdated    EventType = "intern.profile_updated"
	EventInternSuspended         EventType = "intern.suspended"
	EventInternUnsuspended       EventType = "intern.unsuspended"
	EventInternCompleted         EventType = "intern.completed"
	EventInternTerminated        EventType = "intern.terminated"
	EventInternCertificateIssued EventType = "intern.certificate_issued"

	EventSubmissionCreated  EventType = "submission.created"
	EventSubmissionReviewed EventType = "submission.reviewed"
)

// Event is the interface all domain events implement.
type Event interface {
	// Type returns the event type.
	Type() EventType

	// AggregateID returns the ID of the entity the event belongs to.
	AggregateID() string

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// Payload returns event data for serialization and notification.
	Payload() map[string]any
}

// BaseEvent provides the common event implementation.
type BaseEvent struct {
	EventType     EventType
	EntityID      string
	Timestamp     time.Time
	CorrelationID string
	Data          map[string]any
}

// NewBaseEvent creates a base event stamped with the current UTC time.
func NewBaseEvent(eventType EventType, entityID string, data map[string]any) BaseEvent {
	if data == nil {
		data = map[string]any{}
	}
	return BaseEvent{
		EventType: eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Type returns the event type.
func (e BaseEvent) Type() EventType { return e.EventType }

// AggregateID returns the entity ID.
func (e BaseEvent) AggregateID() string { return e.EntityID }

// OccurredAt returns the event timestamp.
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// Payload returns the event data.
func (e BaseEvent) Payload() map[string]any { return e.Data }

// WithCorrelationID returns a copy of the event carrying a correlation ID.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// ══════════════════════════════════════════════════════════════════════════════
// PUBLISHER / BUS CONTRACTS
// ══════════════════════════════════════════════════════════════════════════════

// EventHandler processes a single event.
type EventHandler interface {
	Handle(event Event) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(event Event) error

// Handle calls the function.
func (f EventHandlerFunc) Handle(event Event) error { return f(event) }

// EventPublisher publishes domain events.
type EventPublisher interface {
	Publish(event Event) error
}

// EventBus combines publishing with subscription.
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for a specific event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for every event.
	SubscribeAll(handler EventHandler) error

	// Close shuts the bus down and waits for in-flight handlers.
	Close() error
}
