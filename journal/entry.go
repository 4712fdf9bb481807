package journal

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Entries is an alias type for a slice of Entry.
type Entries = []Entry

// Entry is the DTO appended to and read back from a journal.
//
// While its properties are exported, it should only be constructed with BuildEntry or
// BuildEntryWithEmptyMetadata.
type Entry struct {
	EventType    string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// BuildEntry is a factory method for Entry.
// Returns an error if payloadJSON or metadataJSON are not valid JSON.
func BuildEntry(eventType string, occurredAt time.Time, payloadJSON []byte, metadataJSON []byte) (Entry, error) {
	if !jsoniter.ConfigFastest.Valid(payloadJSON) {
		return Entry{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.ConfigFastest.Valid(metadataJSON) {
		return Entry{}, ErrInvalidMetadataJSON
	}

	return Entry{
		EventType:    eventType,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}

// BuildEntryWithEmptyMetadata is a factory method for Entry with "{}" as metadata.
func BuildEntryWithEmptyMetadata(eventType string, occurredAt time.Time, payloadJSON []byte) (Entry, error) {
	return BuildEntry(eventType, occurredAt, payloadJSON, []byte("{}"))
}

// Appender writes entries to a journal. All entries of one call are written together or not at all,
// as far as the backend allows.
type Appender interface {
	Append(ctx context.Context, entry Entry, more ...Entry) error
}

// Reader reads entries back in append order.
type Reader interface {
	Query(ctx context.Context, filter Filter) (Entries, error)
}
