package core

import (
	"time"
)

// RecordIDInt represents a catalogued record identifier.
type RecordIDInt = int

// PatronIDInt represents a patron identifier.
type PatronIDInt = int

// EventTypeString represents the type identifier of an event.
type EventTypeString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
