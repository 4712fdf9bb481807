package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// ErrNilAppender is returned when a JournalRecorder is created without an appender.
var ErrNilAppender = errors.New("journal appender must not be nil")

// JournalRecorder maps domain events to journal entries and appends them in one call.
//
// All events of one Record call share a fresh correlation id. The first event is caused by the
// correlation id itself, every following event by its predecessor's message id.
type JournalRecorder struct {
	appender journal.Appender
}

// NewJournalRecorder creates a JournalRecorder appending to appender.
func NewJournalRecorder(appender journal.Appender) (*JournalRecorder, error) {
	if appender == nil {
		return nil, ErrNilAppender
	}

	return &JournalRecorder{appender: appender}, nil
}

// Record appends events to the journal. It is a no-op for zero events.
func (r *JournalRecorder) Record(ctx context.Context, events ...core.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	correlationID := uuid.New()
	causationID := correlationID
	entries := make(journal.Entries, 0, len(events))

	for _, event := range events {
		messageID := uuid.New()

		entry, err := EntryFrom(event, BuildEventMetadata(messageID, causationID, correlationID))
		if err != nil {
			return err
		}

		entries = append(entries, entry)
		causationID = messageID
	}

	return r.appender.Append(ctx, entries[0], entries[1:]...)
}
