package core

import (
	"time"
)

const (
	// AddingRecordFailedEventType is the event type identifier.
	AddingRecordFailedEventType = "AddingRecordFailed"

	// LendingRecordFailedEventType is the event type identifier.
	LendingRecordFailedEventType = "LendingRecordFailed"

	// ReturningRecordFailedEventType is the event type identifier.
	ReturningRecordFailedEventType = "ReturningRecordFailed"

	// RemovingRecordFailedEventType is the event type identifier.
	RemovingRecordFailedEventType = "RemovingRecordFailed"
)

// AddingRecordFailed represents when adding a record was rejected, e.g. because the id is taken.
type AddingRecordFailed struct {
	EventType   EventTypeString
	RecordID    RecordIDInt
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildAddingRecordFailed creates a new AddingRecordFailed event.
func BuildAddingRecordFailed(recordID RecordIDInt, failureInfo string, occurredAt time.Time) AddingRecordFailed {
	return AddingRecordFailed{
		EventType:   AddingRecordFailedEventType,
		RecordID:    recordID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e AddingRecordFailed) IsEventType() string {
	return AddingRecordFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AddingRecordFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e AddingRecordFailed) IsErrorEvent() bool {
	return true
}

// LendingRecordFailed represents when lending a record or queueing a claim was rejected.
type LendingRecordFailed struct {
	EventType   EventTypeString
	RecordID    RecordIDInt
	PatronID    PatronIDInt
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildLendingRecordFailed creates a new LendingRecordFailed event.
func BuildLendingRecordFailed(
	recordID RecordIDInt,
	patronID PatronIDInt,
	failureInfo string,
	occurredAt time.Time,
) LendingRecordFailed {

	return LendingRecordFailed{
		EventType:   LendingRecordFailedEventType,
		RecordID:    recordID,
		PatronID:    patronID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LendingRecordFailed) IsEventType() string {
	return LendingRecordFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LendingRecordFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e LendingRecordFailed) IsErrorEvent() bool {
	return true
}

// ReturningRecordFailed represents when a return was rejected.
type ReturningRecordFailed struct {
	EventType   EventTypeString
	RecordID    RecordIDInt
	PatronID    PatronIDInt
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildReturningRecordFailed creates a new ReturningRecordFailed event.
func BuildReturningRecordFailed(
	recordID RecordIDInt,
	patronID PatronIDInt,
	failureInfo string,
	occurredAt time.Time,
) ReturningRecordFailed {

	return ReturningRecordFailed{
		EventType:   ReturningRecordFailedEventType,
		RecordID:    recordID,
		PatronID:    patronID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReturningRecordFailed) IsEventType() string {
	return ReturningRecordFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReturningRecordFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e ReturningRecordFailed) IsErrorEvent() bool {
	return true
}

// RemovingRecordFailed represents when removing a record was rejected.
type RemovingRecordFailed struct {
	EventType   EventTypeString
	RecordID    RecordIDInt
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildRemovingRecordFailed creates a new RemovingRecordFailed event.
func BuildRemovingRecordFailed(recordID RecordIDInt, failureInfo string, occurredAt time.Time) RemovingRecordFailed {
	return RemovingRecordFailed{
		EventType:   RemovingRecordFailedEventType,
		RecordID:    recordID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RemovingRecordFailed) IsEventType() string {
	return RemovingRecordFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RemovingRecordFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected operation.
func (e RemovingRecordFailed) IsErrorEvent() bool {
	return true
}
