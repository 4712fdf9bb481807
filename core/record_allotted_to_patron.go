package core

import (
	"time"
)

// RecordAllottedToPatronEventType is the event type identifier.
const RecordAllottedToPatronEventType = "RecordAllottedToPatron"

// RecordAllottedToPatron represents when a returned record went straight to the first waiting claimant.
type RecordAllottedToPatron struct {
	EventType  EventTypeString
	RecordID   RecordIDInt
	PatronID   PatronIDInt
	Priority   int
	OccurredAt OccurredAtTS
}

// BuildRecordAllottedToPatron creates a new RecordAllottedToPatron event.
func BuildRecordAllottedToPatron(
	recordID RecordIDInt,
	patronID PatronIDInt,
	priority int,
	occurredAt time.Time,
) RecordAllottedToPatron {

	return RecordAllottedToPatron{
		EventType:  RecordAllottedToPatronEventType,
		RecordID:   recordID,
		PatronID:   patronID,
		Priority:   priority,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RecordAllottedToPatron) IsEventType() string {
	return RecordAllottedToPatronEventType
}

// HasOccurredAt returns when this event occurred.
func (e RecordAllottedToPatron) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e RecordAllottedToPatron) IsErrorEvent() bool {
	return false
}
