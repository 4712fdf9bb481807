package core

import (
	"time"
)

// ClaimQueuedForRecordEventType is the event type identifier.
const ClaimQueuedForRecordEventType = "ClaimQueuedForRecord"

// ClaimQueuedForRecord represents when a patron's claim joined the waitlist of a record on loan.
type ClaimQueuedForRecord struct {
	EventType  EventTypeString
	RecordID   RecordIDInt
	PatronID   PatronIDInt
	Priority   int
	Arrival    uint64
	OccurredAt OccurredAtTS
}

// BuildClaimQueuedForRecord creates a new ClaimQueuedForRecord event.
func BuildClaimQueuedForRecord(
	recordID RecordIDInt,
	patronID PatronIDInt,
	priority int,
	arrival uint64,
	occurredAt time.Time,
) ClaimQueuedForRecord {

	return ClaimQueuedForRecord{
		EventType:  ClaimQueuedForRecordEventType,
		RecordID:   recordID,
		PatronID:   patronID,
		Priority:   priority,
		Arrival:    arrival,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ClaimQueuedForRecord) IsEventType() string {
	return ClaimQueuedForRecordEventType
}

// HasOccurredAt returns when this event occurred.
func (e ClaimQueuedForRecord) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ClaimQueuedForRecord) IsErrorEvent() bool {
	return false
}
