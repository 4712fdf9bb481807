package core

import (
	"time"
)

// RecordRemovedFromCatalogEventType is the event type identifier.
const RecordRemovedFromCatalogEventType = "RecordRemovedFromCatalog"

// RecordRemovedFromCatalog represents when a record left the catalog, cancelling all pending claims.
type RecordRemovedFromCatalog struct {
	EventType          EventTypeString
	RecordID           RecordIDInt
	CancelledPatronIDs []PatronIDInt
	OccurredAt         OccurredAtTS
}

// BuildRecordRemovedFromCatalog creates a new RecordRemovedFromCatalog event.
func BuildRecordRemovedFromCatalog(
	recordID RecordIDInt,
	cancelledPatronIDs []PatronIDInt,
	occurredAt time.Time,
) RecordRemovedFromCatalog {

	if cancelledPatronIDs == nil {
		cancelledPatronIDs = []PatronIDInt{}
	}

	return RecordRemovedFromCatalog{
		EventType:          RecordRemovedFromCatalogEventType,
		RecordID:           recordID,
		CancelledPatronIDs: cancelledPatronIDs,
		OccurredAt:         ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RecordRemovedFromCatalog) IsEventType() string {
	return RecordRemovedFromCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e RecordRemovedFromCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e RecordRemovedFromCatalog) IsErrorEvent() bool {
	return false
}
