package core

import (
	"time"
)

// RecordAddedToCatalogEventType is the event type identifier.
const RecordAddedToCatalogEventType = "RecordAddedToCatalog"

// RecordAddedToCatalog represents when a new record was catalogued.
type RecordAddedToCatalog struct {
	EventType  EventTypeString
	RecordID   RecordIDInt
	Title      string
	Author     string
	Available  bool
	OccurredAt OccurredAtTS
}

// BuildRecordAddedToCatalog creates a new RecordAddedToCatalog event.
func BuildRecordAddedToCatalog(
	recordID RecordIDInt,
	title string,
	author string,
	available bool,
	occurredAt time.Time,
) RecordAddedToCatalog {

	return RecordAddedToCatalog{
		EventType:  RecordAddedToCatalogEventType,
		RecordID:   recordID,
		Title:      title,
		Author:     author,
		Available:  available,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RecordAddedToCatalog) IsEventType() string {
	return RecordAddedToCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e RecordAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e RecordAddedToCatalog) IsErrorEvent() bool {
	return false
}
