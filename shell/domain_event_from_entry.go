package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple journal entries to DomainEvents.
func DomainEventsFrom(entries journal.Entries) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(entries))

	for _, entry := range entries {
		domainEvent, err := DomainEventFrom(entry)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a journal.Entry to its corresponding DomainEvent.
func DomainEventFrom(entry journal.Entry) (core.DomainEvent, error) {
	switch entry.EventType {
	case core.RecordAddedToCatalogEventType:
		return unmarshalInto[core.RecordAddedToCatalog](entry.PayloadJSON)

	case core.RecordLentToPatronEventType:
		return unmarshalInto[core.RecordLentToPatron](entry.PayloadJSON)

	case core.ClaimQueuedForRecordEventType:
		return unmarshalInto[core.ClaimQueuedForRecord](entry.PayloadJSON)

	case core.RecordReturnedByPatronEventType:
		return unmarshalInto[core.RecordReturnedByPatron](entry.PayloadJSON)

	case core.RecordAllottedToPatronEventType:
		return unmarshalInto[core.RecordAllottedToPatron](entry.PayloadJSON)

	case core.RecordRemovedFromCatalogEventType:
		return unmarshalInto[core.RecordRemovedFromCatalog](entry.PayloadJSON)

	case core.AddingRecordFailedEventType:
		return unmarshalInto[core.AddingRecordFailed](entry.PayloadJSON)

	case core.LendingRecordFailedEventType:
		return unmarshalInto[core.LendingRecordFailed](entry.PayloadJSON)

	case core.ReturningRecordFailedEventType:
		return unmarshalInto[core.ReturningRecordFailed](entry.PayloadJSON)

	case core.RemovingRecordFailedEventType:
		return unmarshalInto[core.RemovingRecordFailed](entry.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalInto[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
