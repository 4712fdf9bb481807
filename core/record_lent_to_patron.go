package core

import (
	"time"
)

// RecordLentToPatronEventType is the event type identifier.
const RecordLentToPatronEventType = "RecordLentToPatron"

// RecordLentToPatron represents when an available record was handed to a patron.
type RecordLentToPatron struct {
	EventType  EventTypeString
	RecordID   RecordIDInt
	PatronID   PatronIDInt
	OccurredAt OccurredAtTS
}

// BuildRecordLentToPatron creates a new RecordLentToPatron event.
func BuildRecordLentToPatron(recordID RecordIDInt, patronID PatronIDInt, occurredAt time.Time) RecordLentToPatron {
	return RecordLentToPatron{
		EventType:  RecordLentToPatronEventType,
		RecordID:   recordID,
		PatronID:   patronID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RecordLentToPatron) IsEventType() string {
	return RecordLentToPatronEventType
}

// HasOccurredAt returns when this event occurred.
func (e RecordLentToPatron) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e RecordLentToPatron) IsErrorEvent() bool {
	return false
}
