package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

var (
	// ErrMappingToEntryFailedForDomainEvent is returned when domain event serialization fails.
	ErrMappingToEntryFailedForDomainEvent = errors.New("mapping to journal entry failed for domain event")

	// ErrMappingToEntryFailedForMetadata is returned when metadata serialization fails.
	ErrMappingToEntryFailedForMetadata = errors.New("mapping to journal entry failed for metadata")
)

// EntryFrom converts a DomainEvent and EventMetadata to a journal.Entry.
func EntryFrom(event core.DomainEvent, metadata EventMetadata) (journal.Entry, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForMetadata, err)
	}

	entry, err := journal.BuildEntry(event.IsEventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
	if err != nil {
		return journal.Entry{}, errors.Join(ErrMappingToEntryFailedForDomainEvent, err)
	}

	return entry, nil
}
