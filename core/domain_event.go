package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a business event that has occurred in the circulation.
type DomainEvent interface {
	// IsEventType returns the string identifier for this event type.
	IsEventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// IsErrorEvent returns true if this event represents a rejected operation.
	IsErrorEvent() bool
}

// EventTypes lists every event type this package defines.
func EventTypes() []EventTypeString {
	return []EventTypeString{
		RecordAddedToCatalogEventType,
		RecordLentToPatronEventType,
		ClaimQueuedForRecordEventType,
		RecordReturnedByPatronEventType,
		RecordAllottedToPatronEventType,
		RecordRemovedFromCatalogEventType,
		AddingRecordFailedEventType,
		LendingRecordFailedEventType,
		ReturningRecordFailedEventType,
		RemovingRecordFailedEventType,
	}
}
