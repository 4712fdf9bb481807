package core

import (
	"time"
)

// RecordReturnedByPatronEventType is the event type identifier.
const RecordReturnedByPatronEventType = "RecordReturnedByPatron"

// RecordReturnedByPatron represents when a patron brought a record back.
type RecordReturnedByPatron struct {
	EventType  EventTypeString
	RecordID   RecordIDInt
	PatronID   PatronIDInt
	OccurredAt OccurredAtTS
}

// BuildRecordReturnedByPatron creates a new RecordReturnedByPatron event.
func BuildRecordReturnedByPatron(recordID RecordIDInt, patronID PatronIDInt, occurredAt time.Time) RecordReturnedByPatron {
	return RecordReturnedByPatron{
		EventType:  RecordReturnedByPatronEventType,
		RecordID:   recordID,
		PatronID:   patronID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RecordReturnedByPatron) IsEventType() string {
	return RecordReturnedByPatronEventType
}

// HasOccurredAt returns when this event occurred.
func (e RecordReturnedByPatron) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e RecordReturnedByPatron) IsErrorEvent() bool {
	return false
}
